// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/differ"
)

// Styles colors status markers and diff lines. A nil *Styles renders plain
// text.
type Styles struct {
	Header     lipgloss.Style
	Added      lipgloss.Style
	Removed    lipgloss.Style
	Modified   lipgloss.Style
	BuildError lipgloss.Style
}

// NewStyles builds styles from the colors.* config keys, falling back to
// defaults picked for the terminal background.
func NewStyles() *Styles {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolve := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString("colors." + key); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return &Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(resolve("title", "#b08800", "#f6be00")),
		Added:      lipgloss.NewStyle().Foreground(resolve("added", "#1a7f37", "#3fb950")),
		Removed:    lipgloss.NewStyle().Foreground(resolve("removed", "#cf222e", "#f85149")),
		Modified:   lipgloss.NewStyle().Foreground(resolve("modified", "#9a6700", "#d29922")),
		BuildError: lipgloss.NewStyle().Bold(true).Foreground(resolve("build_error", "#8250df", "#bc8cff")),
	}
}

func (s *Styles) status(st differ.Status, text string) string {
	if s == nil {
		return text
	}
	switch st {
	case differ.StatusAdded:
		return s.Added.Render(text)
	case differ.StatusRemoved:
		return s.Removed.Render(text)
	case differ.StatusModified:
		return s.Modified.Render(text)
	case differ.StatusBuildError:
		return s.BuildError.Render(text)
	}
	return text
}

func (s *Styles) header(text string) string {
	if s == nil {
		return text
	}
	return s.Header.Render(text)
}
