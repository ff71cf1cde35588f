// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apitree

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var (
	// ErrSchemaMismatch reports input that does not follow the declaration tree
	// schema, such as a leaf without a declaration.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrIO reports a snapshot that could not be read.
	ErrIO = errors.New("snapshot unreadable")
)

// Attr is a scalar attribute carried alongside a node (path, api_link, ...).
// Raw holds the attribute's JSON text.
type Attr struct {
	Key string
	Raw string
}

// StringAttr returns a string valued attribute.
func StringAttr(key, value string) Attr {
	raw, _ := json.Marshal(value)
	return Attr{Key: key, Raw: string(raw)}
}

// Attrs is an ordered attribute list.
type Attrs []Attr

// Get returns the string value of the named attribute and whether it exists.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return gjson.Parse(attr.Raw).String(), true
		}
	}
	return "", false
}

// Header holds what every node has in common.
type Header struct {
	Key   string
	Level Level
	Attrs Attrs
}

// Base returns the node header.
func (h *Header) Base() *Header { return h }

// Node is either a *Leaf or a *Branch.
type Node interface {
	Base() *Header
	isNode()
}

// Leaf is a node without children. Its declaration is required.
type Leaf struct {
	Header
	Declaration []string
}

// Branch is a node with a child container. Declaration is nil when the
// branch carries none (module and api type nodes never do).
type Branch struct {
	Header
	Declaration []string
	Children    *Children
}

func (*Leaf) isNode()   {}
func (*Branch) isNode() {}

// DeclarationOf returns a node's declaration and whether it has one.
func DeclarationOf(n Node) ([]string, bool) {
	switch n := n.(type) {
	case *Leaf:
		return n.Declaration, n.Declaration != nil
	case *Branch:
		return n.Declaration, n.Declaration != nil
	}
	return nil, false
}

// ChildrenOf returns a node's children. Leaves have none.
func ChildrenOf(n Node) *Children {
	if b, ok := n.(*Branch); ok && b.Children != nil {
		return b.Children
	}
	return NewChildren()
}

// Children is an insertion-ordered set of nodes keyed by name. The zero value
// and nil are both usable as an empty set.
type Children struct {
	keys  []string
	nodes map[string]Node
}

// NewChildren returns an empty set.
func NewChildren(nodes ...Node) *Children {
	c := &Children{}
	for _, n := range nodes {
		c.Put(n)
	}
	return c
}

// Len returns the number of children.
func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the child keys in insertion order.
func (c *Children) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Get returns the named child.
func (c *Children) Get(key string) (Node, bool) {
	if c == nil || c.nodes == nil {
		return nil, false
	}
	n, ok := c.nodes[key]
	return n, ok
}

// Put adds n, or replaces the existing child with the same key in place.
func (c *Children) Put(n Node) {
	key := n.Base().Key
	if c.nodes == nil {
		c.nodes = make(map[string]Node)
	}
	if _, exists := c.nodes[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.nodes[key] = n
}

// Each calls fn for every child in order.
func (c *Children) Each(fn func(key string, n Node)) {
	if c == nil {
		return
	}
	for _, k := range c.keys {
		fn(k, c.nodes[k])
	}
}

// Tree is one snapshot. Root is the level of the top-level keys.
type Tree struct {
	Root  Level
	Nodes *Children
}

// NewTree returns an empty tree rooted at root.
func NewTree(root Level, nodes ...Node) *Tree {
	return &Tree{Root: root, Nodes: NewChildren(nodes...)}
}

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return t == nil || t.Nodes.Len() == 0
}
