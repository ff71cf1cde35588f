// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/differ"
)

// ErrMalformedDiffTree reports a diff tree the renderers cannot walk.
var ErrMalformedDiffTree = errors.New("malformed diff tree")

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatDelta    Format = "delta"
)

// Formats lists every format accepted by --output.
var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML, FormatDelta}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, must be one of %v", s, Formats)
}

// Option customizes rendering.
type Option func(*options)

type options struct {
	styles *Styles
}

// WithStyles colors text output.
func WithStyles(s *Styles) Option {
	return func(o *options) { o.styles = s }
}

// Render renders tree as text or markdown. An empty tree renders as "".
func Render(tree *differ.Tree, format Format, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(tree); err != nil {
		return "", err
	}

	switch format {
	case FormatText:
		return Text(tree, o.styles), nil
	case FormatMarkdown:
		return Markdown(tree), nil
	}
	return "", fmt.Errorf("format %q cannot be rendered as a report", format)
}

// Validate checks the shape of tree: known statuses, a payload on every
// modified node, and children exactly one level below their parent.
func Validate(tree *differ.Tree) error {
	if tree == nil {
		return nil
	}
	if !tree.Root.Valid() {
		return fmt.Errorf("%w: invalid root level %s", ErrMalformedDiffTree, tree.Root)
	}
	var err error
	tree.Walk(func(path []string, n *differ.Node) bool {
		if err == nil {
			err = validateNode(tree.Root, path, n)
		}
		return err == nil
	})
	return err
}

func validateNode(root apitree.Level, path []string, n *differ.Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node under %s", ErrMalformedDiffTree, strings.Join(path, " > "))
	}
	at := strings.Join(append(path[:len(path):len(path)], n.Key), " > ")
	want := root + apitree.Level(len(path))
	switch {
	case n.Level != want:
		return fmt.Errorf("%w at %s: %s node where %s was expected", ErrMalformedDiffTree, at, n.Level, want)
	case !n.Status.Valid():
		return fmt.Errorf("%w at %s: unknown status %q", ErrMalformedDiffTree, at, n.Status)
	case n.Status == differ.StatusModified && n.Declaration == nil && n.Previous == nil:
		return fmt.Errorf("%w at %s: modified node has no declarations", ErrMalformedDiffTree, at)
	case len(n.Children) > 0 && n.Level.Container() == "":
		return fmt.Errorf("%w at %s: %s node has children", ErrMalformedDiffTree, at, n.Level)
	}
	return nil
}

// Token is the report marker for a status.
func Token(s differ.Status) string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}
