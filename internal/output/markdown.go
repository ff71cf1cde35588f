// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"strings"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/differ"
)

// Languages are the declaration projections Markdown bodies are grouped by,
// in output order.
var Languages = []string{"Swift", "Objective-C"}

const (
	minHeading = 3
	maxHeading = 6
	divider    = "-----\n"
)

// Markdown renders tree for a pull request comment. Nodes without status
// become headings, changed nodes collapsible blocks with a diff fenced body.
// Modules always get a heading and are closed by a divider.
func Markdown(tree *differ.Tree) string {
	if tree == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range tree.Nodes {
		writeMarkdown(&b, n, 0)
	}
	return b.String()
}

func writeMarkdown(b *strings.Builder, n *differ.Node, depth int) {
	heading := strings.Repeat("#", min(depth+minHeading, maxHeading))
	module := n.Level == apitree.LevelModule

	switch n.Status {
	case differ.StatusNone:
		fmt.Fprintf(b, "%s %s\n", heading, n.Key)
		for _, c := range n.Children {
			writeMarkdown(b, c, depth+1)
		}
	default:
		token := Token(n.Status)
		if module {
			fmt.Fprintf(b, "%s %s [%s]\n", heading, n.Key, token)
		}
		if n.Status != differ.StatusBuildError {
			fmt.Fprintf(b, "<details>\n<summary>\n[%s] %s\n</summary>\n\n", token, n.Key)
			fmt.Fprintf(b, "```diff\n%s\n```\n\n</details>\n\n", Categorize(diffLines(n, 0)))
		}
	}

	if module {
		b.WriteString(divider)
	}
}

// diffLines renders the body of a changed node as diff lines.
func diffLines(n *differ.Node, depth int) []string {
	indent := strings.Repeat(indentUnit, depth)
	var lines []string

	switch n.Status {
	case differ.StatusAdded, differ.StatusRemoved:
		return verbatimLines(n, prefix(n.Status), depth)
	case differ.StatusModified:
		for _, line := range n.Added {
			lines = append(lines, "+ "+indent+line)
		}
		for _, line := range n.Removed {
			lines = append(lines, "- "+indent+line)
		}
	case differ.StatusBuildError:
		lines = append(lines, "! "+indent+Token(n.Status)+": "+n.Key)
	default:
		lines = append(lines, "  "+indent+n.Key)
	}

	for _, c := range n.Children {
		lines = append(lines, diffLines(c, depth+1)...)
	}
	return lines
}

// verbatimLines renders a copied subtree. Nodes without a declaration show
// their key.
func verbatimLines(n *differ.Node, p string, depth int) []string {
	indent := strings.Repeat(indentUnit, depth)
	var lines []string
	if len(n.Declaration) == 0 {
		lines = append(lines, p+indent+n.Key)
	}
	for _, line := range n.Declaration {
		lines = append(lines, p+indent+line)
	}
	for _, c := range n.Children {
		lines = append(lines, verbatimLines(c, p, depth+1)...)
	}
	return lines
}

func prefix(s differ.Status) string {
	if s == differ.StatusRemoved {
		return "- "
	}
	return "+ "
}

// Categorize groups diff lines by language. A line belongs to the earliest
// language it mentions, and that mention is dropped from it. Lines naming no
// language lead the output ungrouped. When no line names a language the lines
// are returned unchanged.
func Categorize(lines []string) string {
	groups := make([][]string, len(Languages))
	var other []string
	grouped := false

	for _, line := range lines {
		i, at := firstLanguage(line)
		if i < 0 {
			other = append(other, line)
			continue
		}
		lang := Languages[i]
		groups[i] = append(groups[i], line[:at]+strings.TrimPrefix(line[at+len(lang):], " "))
		grouped = true
	}

	if !grouped {
		return strings.Join(lines, "\n")
	}

	out := other
	for i, lang := range Languages {
		if len(groups[i]) > 0 {
			out = append(out, lang+":")
			out = append(out, groups[i]...)
		}
	}
	return strings.Join(out, "\n")
}

// firstLanguage returns the index into Languages of the language mentioned
// earliest in line and the position of that mention, or -1.
func firstLanguage(line string) (lang, at int) {
	lang, at = -1, -1
	for i, name := range Languages {
		if j := strings.Index(line, name); j >= 0 && (at < 0 || j < at) {
			lang, at = i, j
		}
	}
	return lang, at
}
