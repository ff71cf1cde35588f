// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package repomodule

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrPickAborted reports that the user quit the picker without confirming.
var ErrPickAborted = errors.New("module selection aborted")

// Pick lets the user choose modules interactively. It returns ErrPickAborted
// when the user quits without confirming.
func Pick(items []Module) ([]Module, error) {
	p := tea.NewProgram(newPicker(items))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("module picker failed: %w", err)
	}
	return m.(picker).Result()
}

type picker struct {
	items    []Module
	cursor   int
	selected map[string]bool
	done     bool
}

func newPicker(items []Module) picker {
	return picker{items: items, selected: map[string]bool{}}
}

// Selected returns the chosen modules in list order, or nil if the picker was
// not confirmed.
func (m picker) Selected() []Module {
	if !m.done {
		return nil
	}
	var out []Module
	for _, item := range m.items {
		if m.selected[item.Name] {
			out = append(out, item)
		}
	}
	return out
}

// Result returns the confirmed selection or ErrPickAborted.
func (m picker) Result() ([]Module, error) {
	if !m.done {
		return nil, ErrPickAborted
	}
	return m.Selected(), nil
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.done = false
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) > 0 {
			name := m.items[m.cursor].Name
			if m.selected[name] {
				delete(m.selected, name)
			} else {
				m.selected[name] = true
			}
		}
	case "a":
		all := len(m.selected) < len(m.items)
		m.selected = map[string]bool{}
		if all {
			for _, item := range m.items {
				m.selected[item.Name] = true
			}
		}
	case "enter":
		if len(m.selected) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select modules to document:\n\n")
	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.selected[item.Name] {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %-32s %s\n", cursor, mark, item.Name, item.Path)
	}
	b.WriteString("\nSPACE: toggle, A: all, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}
