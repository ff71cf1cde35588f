// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/differ"
	"github.com/tfctl/apidiff/internal/log"
)

// Emit writes tree to w in the requested format. If w is nil, os.Stdout is
// used. Text and markdown write nothing for an empty tree; json and yaml write
// an empty document.
func Emit(w io.Writer, tree *differ.Tree, format Format, opts ...Option) error {
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case FormatJSON:
		if err := Validate(tree); err != nil {
			return err
		}
		data, err := differ.Encode(tree)
		if err != nil {
			return fmt.Errorf("failed to encode diff: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		if err := Validate(tree); err != nil {
			return err
		}
		data, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to encode diff: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	report, err := Render(tree, format, opts...)
	if err != nil {
		return err
	}
	log.Debugf("rendered %s report: %s", format, humanize.Bytes(uint64(len(report))))
	_, err = io.WriteString(w, report)
	return err
}

// SummaryWriter renders the per api type change counts of tree as a table.
// Nothing is written for an empty tree. If w is nil, os.Stdout is used.
func SummaryWriter(w io.Writer, tree *differ.Tree, styles *Styles, titles bool) {
	if w == nil {
		w = os.Stdout
	}

	counts := tree.Counts()
	if len(counts) == 0 {
		return
	}

	var (
		headerStyle = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle   = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		numberStyle = cellStyle.Align(lipgloss.Right)
	)
	if styles != nil {
		headerStyle = headerStyle.Foreground(styles.Header.GetForeground())
	}

	withModule := tree.Root == apitree.LevelModule
	var rows [][]string
	for _, c := range counts {
		row := []string{}
		if withModule {
			row = append(row, dash(c.Module))
		}
		row = append(row,
			dash(c.APIType),
			humanize.Comma(int64(c.Added)),
			humanize.Comma(int64(c.Removed)),
			humanize.Comma(int64(c.Modified)),
			humanize.Comma(int64(c.BuildError)),
			humanize.Comma(int64(c.Total())),
		)
		rows = append(rows, row)
	}
	labels := 1
	if withModule {
		labels = 2
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case col >= labels:
				style = numberStyle
			default:
				style = cellStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2) //nolint:mnd
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if titles {
		var headers []string
		if withModule {
			headers = append(headers, "MODULE")
		}
		headers = append(headers, "API TYPE", "ADDED", "REMOVED", "MODIFIED", "BUILD ERROR", "TOTAL")
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
