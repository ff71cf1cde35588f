// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"

	"github.com/tfctl/apidiff/internal/differ"
)

const indentUnit = "  "

// Text renders tree as an indented plain-text report. Each changed node is a
// "STATUS: key" line with its declaration one level deeper; modified nodes
// list their added and removed lines with "+ " and "- ". Nodes without status
// print just their key. styles may be nil.
func Text(tree *differ.Tree, styles *Styles) string {
	if tree == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range tree.Nodes {
		writeText(&b, n, 0, styles)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *differ.Node, depth int, styles *Styles) {
	indent := strings.Repeat(indentUnit, depth)
	body := indent + indentUnit

	b.WriteString(indent)
	if n.Status != differ.StatusNone {
		b.WriteString(styles.status(n.Status, Token(n.Status)+":"))
		b.WriteByte(' ')
	}
	b.WriteString(n.Key)
	b.WriteByte('\n')

	if n.Status == differ.StatusModified {
		for _, line := range n.Added {
			b.WriteString(body + styles.status(differ.StatusAdded, "+ "+line) + "\n")
		}
		for _, line := range n.Removed {
			b.WriteString(body + styles.status(differ.StatusRemoved, "- "+line) + "\n")
		}
	} else {
		for _, line := range n.Declaration {
			b.WriteString(body + line + "\n")
		}
	}

	for _, c := range n.Children {
		writeText(b, c, depth+1, styles)
	}
}
