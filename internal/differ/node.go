// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/tfctl/apidiff/internal/apitree"
)

// Status classifies a node of the diff tree. Nodes that are only present
// because a descendant changed carry StatusNone.
type Status string

const (
	StatusNone       Status = ""
	StatusAdded      Status = "added"
	StatusRemoved    Status = "removed"
	StatusModified   Status = "modified"
	StatusBuildError Status = "build_error"
)

// Statuses lists the taxonomy in reporting order.
var Statuses = []Status{StatusAdded, StatusRemoved, StatusModified, StatusBuildError}

// Valid reports whether s is StatusNone or one of Statuses.
func (s Status) Valid() bool {
	if s == StatusNone {
		return true
	}
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Invert swaps added and removed.
func (s Status) Invert() Status {
	switch s {
	case StatusAdded:
		return StatusRemoved
	case StatusRemoved:
		return StatusAdded
	}
	return s
}

// Node is one entry of a diff tree.
//
// Added and removed nodes carry the verbatim subtree of the side they came
// from; their descendants have StatusNone. A modified node carries the new
// Declaration, the Previous one, and the lines unique to each side in Added
// and Removed.
type Node struct {
	Key         string
	Level       apitree.Level
	Status      Status
	Attrs       apitree.Attrs
	Declaration []string
	Previous    []string
	Added       []string
	Removed     []string
	Children    []*Node

	// verbatim marks nodes copied whole from one of the inputs.
	verbatim bool
}

// Verbatim reports whether n was copied whole from one of the inputs, either
// as an added or removed node or as a descendant of one.
func (n *Node) Verbatim() bool { return n.verbatim }

// Child returns the named child.
func (n *Node) Child(key string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

// Invert returns a copy of n as if the inputs had been swapped.
func (n *Node) Invert() *Node {
	inv := *n
	inv.Status = n.Status.Invert()
	if n.Status == StatusModified {
		inv.Declaration, inv.Previous = n.Previous, n.Declaration
		inv.Added, inv.Removed = n.Removed, n.Added
	}
	inv.Children = make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		inv.Children = append(inv.Children, c.Invert())
	}
	return &inv
}

// Tree is a diff tree. Root is the level of the top-level nodes.
type Tree struct {
	Root  apitree.Level
	Nodes []*Node
}

// Empty reports whether there are no differences.
func (t *Tree) Empty() bool {
	return t == nil || len(t.Nodes) == 0
}

// Get returns the top-level node named key.
func (t *Tree) Get(key string) (*Node, bool) {
	for _, n := range t.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return nil, false
}

// Lookup walks a key path from the top level down.
func (t *Tree) Lookup(path ...string) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	n, ok := t.Get(path[0])
	if !ok {
		return nil, fmt.Errorf("no node %q", path[0])
	}
	for _, key := range path[1:] {
		if n, ok = n.Child(key); !ok {
			return nil, fmt.Errorf("no node %q", key)
		}
	}
	return n, nil
}

// Invert returns the tree that diffing the swapped inputs would produce, up to
// key order.
func (t *Tree) Invert() *Tree {
	inv := &Tree{Root: t.Root, Nodes: make([]*Node, 0, len(t.Nodes))}
	for _, n := range t.Nodes {
		inv.Nodes = append(inv.Nodes, n.Invert())
	}
	return inv
}

// Walk calls fn for every node depth first with its ancestors' keys. Returning
// false skips the node's children.
func (t *Tree) Walk(fn func(path []string, n *Node) bool) {
	var walk func(path []string, nodes []*Node)
	walk = func(path []string, nodes []*Node) {
		for _, n := range nodes {
			if fn(path, n) {
				walk(append(path[:len(path):len(path)], n.Key), n.Children)
			}
		}
	}
	walk(nil, t.Nodes)
}
