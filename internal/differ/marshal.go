// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"

	"github.com/tfctl/apidiff/internal/apitree"
)

// ToObject converts the tree to the nested snapshot schema with a status field
// on every changed node.
func (t *Tree) ToObject() *apitree.Object {
	obj := apitree.NewObject()
	if t == nil {
		return obj
	}
	for _, n := range t.Nodes {
		obj.Set(n.Key, n.ToObject())
	}
	return obj
}

// ToObject converts one node. Key order is attributes, declaration, modified
// payload, child container, status.
func (n *Node) ToObject() *apitree.Object {
	obj := apitree.NewObject()
	for _, attr := range n.Attrs {
		obj.Set(attr.Key, json.RawMessage(attr.Raw))
	}

	if n.Declaration != nil {
		obj.Set("declaration", n.Declaration)
	}
	if n.Status == StatusModified {
		obj.Set("previous", n.Previous)
		obj.Set("added", n.Added)
		obj.Set("removed", n.Removed)
	}

	if container := n.Level.Container(); container != "" && (n.verbatim || len(n.Children) > 0) {
		children := apitree.NewObject()
		for _, c := range n.Children {
			children.Set(c.Key, c.ToObject())
		}
		obj.Set(container, children)
	}

	if n.Status != StatusNone {
		obj.Set("status", string(n.Status))
	}
	return obj
}

// MarshalJSON implements json.Marshaler.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.ToObject().MarshalJSON()
}

// MarshalYAML implements yaml.Marshaler.
func (t *Tree) MarshalYAML() (interface{}, error) {
	return t.ToObject().MarshalYAML()
}

// Encode renders the tree as indented JSON.
func Encode(t *Tree) ([]byte, error) {
	return apitree.MarshalIndent(t.ToObject())
}
