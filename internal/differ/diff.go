// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/log"
)

// options holds optional diff behavior.
type options struct {
	sorted bool
}

// Option customizes Diff.
type Option func(*options)

// WithSortedKeys orders the keys of every level by name instead of first-seen
// order.
func WithSortedKeys() Option {
	return func(o *options) { o.sorted = true }
}

// Diff compares newTree against oldTree. Keys are visited in first-seen order,
// new tree first, then keys only present in the old tree.
//
// Api types are groupings rather than declarations: one present on a single
// side is compared against an empty api type, so its apis are reported as
// added or removed one by one.
func Diff(newTree, oldTree *apitree.Tree, opts ...Option) (*Tree, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	root, err := rootLevel(newTree, oldTree)
	if err != nil {
		return nil, err
	}

	d := differ{options: o}
	nodes, err := d.children(nodesOf(newTree), nodesOf(oldTree), root, nil)
	if err != nil {
		return nil, err
	}
	log.Debugf("diff: root=%s changed=%d", root, len(nodes))
	return &Tree{Root: root, Nodes: nodes}, nil
}

// rootLevel picks the shared root of the two trees. Empty trees adopt the
// other side's root.
func rootLevel(newTree, oldTree *apitree.Tree) (apitree.Level, error) {
	switch {
	case newTree.Empty() && oldTree.Empty():
		if newTree != nil {
			return newTree.Root, nil
		}
		if oldTree != nil {
			return oldTree.Root, nil
		}
		return apitree.LevelAPIType, nil
	case newTree.Empty():
		return oldTree.Root, nil
	case oldTree.Empty():
		return newTree.Root, nil
	case newTree.Root != oldTree.Root:
		return 0, fmt.Errorf("%w: new tree is rooted at %s, old tree at %s",
			apitree.ErrSchemaMismatch, newTree.Root, oldTree.Root)
	}
	return newTree.Root, nil
}

func nodesOf(t *apitree.Tree) *apitree.Children {
	if t == nil {
		return nil
	}
	return t.Nodes
}

type differ struct {
	options
}

func (d differ) children(newC, oldC *apitree.Children, level apitree.Level, path []string) ([]*Node, error) {
	var result []*Node
	for _, key := range d.keys(newC, oldC) {
		p := append(path[:len(path):len(path)], key)
		n, inNew := newC.Get(key)
		o, inOld := oldC.Get(key)

		var (
			node *Node
			err  error
		)
		switch {
		case level == apitree.LevelAPIType && inNew != inOld:
			node, err = d.group(n, o, level, p)
		case inNew && !inOld:
			node, err = d.verbatim(n, level, StatusAdded, p)
		case !inNew && inOld:
			node, err = d.verbatim(o, level, StatusRemoved, p)
		default:
			node, err = d.both(n, o, level, p)
		}
		if err != nil {
			return nil, err
		}
		if node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

func (d differ) keys(newC, oldC *apitree.Children) []string {
	keys := newC.Keys()
	for _, k := range oldC.Keys() {
		if _, ok := newC.Get(k); !ok {
			keys = append(keys, k)
		}
	}
	if d.sorted {
		slices.Sort(keys)
	}
	return keys
}

// both compares a key present on both sides. It returns nil when the subtrees
// are identical.
func (d differ) both(n, o apitree.Node, level apitree.Level, path []string) (*Node, error) {
	if err := check(n, level, path); err != nil {
		return nil, err
	}
	if err := check(o, level, path); err != nil {
		return nil, err
	}

	node := &Node{Key: n.Base().Key, Level: level}

	// A module that failed to build on one side only cannot be compared. When
	// both sides failed the (empty) api types are compared as usual.
	if level == apitree.LevelModule && emptyPath(n) != emptyPath(o) {
		node.Status = StatusBuildError
		node.Attrs = n.Base().Attrs
		return node, nil
	}

	if level.HasDeclaration() {
		newDecl, _ := apitree.DeclarationOf(n)
		oldDecl, _ := apitree.DeclarationOf(o)
		if !slices.Equal(newDecl, oldDecl) {
			node.Status = StatusModified
			node.Attrs = n.Base().Attrs
			node.Declaration = orEmpty(newDecl)
			node.Previous = orEmpty(oldDecl)
			node.Added, node.Removed = lineDelta(newDecl, oldDecl)
		}
	}

	if next, ok := level.Next(); ok {
		children, err := d.children(apitree.ChildrenOf(n), apitree.ChildrenOf(o), next, path)
		if err != nil {
			return nil, err
		}
		node.Children = children
	}

	if node.Status == StatusNone && len(node.Children) == 0 {
		return nil, nil
	}
	return node, nil
}

// group diffs an api type found on one side only. The missing side is nil.
func (d differ) group(n, o apitree.Node, level apitree.Level, path []string) (*Node, error) {
	present := n
	if present == nil {
		present = o
	}
	if err := check(present, level, path); err != nil {
		return nil, err
	}

	next, _ := level.Next()
	children, err := d.children(apitree.ChildrenOf(n), apitree.ChildrenOf(o), next, path)
	if err != nil || len(children) == 0 {
		return nil, err
	}
	return &Node{Key: present.Base().Key, Level: level, Children: children}, nil
}

// verbatim copies a one-sided subtree. Only the top node carries status.
func (d differ) verbatim(n apitree.Node, level apitree.Level, status Status, path []string) (*Node, error) {
	if err := check(n, level, path); err != nil {
		return nil, err
	}

	h := n.Base()
	node := &Node{Key: h.Key, Level: level, Status: status, Attrs: h.Attrs, verbatim: true}
	if decl, ok := apitree.DeclarationOf(n); ok {
		node.Declaration = decl
	} else if level.HasDeclaration() {
		node.Declaration = []string{}
	}

	next, ok := level.Next()
	if !ok {
		return node, nil
	}
	children := apitree.ChildrenOf(n)
	for _, key := range d.keys(children, nil) {
		child, _ := children.Get(key)
		c, err := d.verbatim(child, next, StatusNone, append(path[:len(path):len(path)], key))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, c)
	}
	return node, nil
}

// check rejects nodes that cannot occur at level.
func check(n apitree.Node, level apitree.Level, path []string) error {
	if n.Base().Level != level {
		return schemaErr(path, "%s node found where %s was expected", n.Base().Level, level)
	}
	if leaf, ok := n.(*apitree.Leaf); ok {
		if !level.HasDeclaration() {
			return schemaErr(path, "%s cannot be a leaf", level)
		}
		if leaf.Declaration == nil {
			return schemaErr(path, "leaf has no declaration")
		}
	}
	return nil
}

func schemaErr(path []string, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", apitree.ErrSchemaMismatch, strings.Join(path, " > "), fmt.Sprintf(format, args...))
}

func emptyPath(n apitree.Node) bool {
	path, ok := n.Base().Attrs.Get("path")
	return ok && strings.TrimSpace(path) == ""
}

func orEmpty(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

// lineDelta returns the lines only found in newDecl and the lines only found
// in oldDecl. When the sequences differ only in order or multiplicity both
// complete sequences are returned.
func lineDelta(newDecl, oldDecl []string) (added, removed []string) {
	for _, line := range newDecl {
		if !slices.Contains(oldDecl, line) {
			added = append(added, line)
		}
	}
	for _, line := range oldDecl {
		if !slices.Contains(newDecl, line) {
			removed = append(removed, line)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return orEmpty(newDecl), orEmpty(oldDecl)
	}
	return orEmpty(added), orEmpty(removed)
}
