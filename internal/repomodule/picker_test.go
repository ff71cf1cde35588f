// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package repomodule

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m picker, keys ...tea.KeyMsg) (picker, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(picker)
		require.True(t, ok)
	}
	return m, cmd
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyAll   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}
)

func TestPicker(t *testing.T) {
	items := []Module{{Name: "A", Path: "a"}, {Name: "B", Path: "b"}, {Name: "C", Path: "c"}}

	t.Run("select and confirm", func(t *testing.T) {
		m, cmd := press(t, newPicker(items), keyDown, keyDown, keySpace, keyUp, keyUp, keySpace, keyEnter)
		require.NotNil(t, cmd)
		assert.Equal(t, []Module{items[0], items[2]}, m.Selected())
		got, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, []Module{items[0], items[2]}, got)
	})

	t.Run("toggle off", func(t *testing.T) {
		m, _ := press(t, newPicker(items), keySpace, keySpace)
		assert.Empty(t, m.selected)
	})

	t.Run("enter needs a selection", func(t *testing.T) {
		m, cmd := press(t, newPicker(items), keyEnter)
		assert.Nil(t, cmd)
		assert.Nil(t, m.Selected())
	})

	t.Run("quit discards", func(t *testing.T) {
		m, cmd := press(t, newPicker(items), keySpace, keyQuit)
		assert.NotNil(t, cmd)
		assert.Nil(t, m.Selected())
		_, err := m.Result()
		assert.ErrorIs(t, err, ErrPickAborted)
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		m, _ := press(t, newPicker(items), keyUp, keyDown, keyDown, keyDown, keyDown)
		assert.Equal(t, 2, m.cursor)
	})

	t.Run("select all", func(t *testing.T) {
		m, _ := press(t, newPicker(items), keyAll, keyEnter)
		assert.Equal(t, items, m.Selected())
		m, _ = press(t, m, keyAll)
		assert.Empty(t, m.selected)
	})

	t.Run("view", func(t *testing.T) {
		m, _ := press(t, newPicker(items), keyDown, keySpace)
		view := m.View()
		assert.Contains(t, view, "> [x] B")
		assert.Contains(t, view, "  [ ] A")
	})
}
