// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apitree

import (
	"bytes"
	"encoding/json"
)

// Encode renders a tree as an indented api_info.json document. Key order is
// preserved.
func Encode(t *Tree) ([]byte, error) {
	return MarshalIndent(ToObject(t))
}

// MarshalIndent is json.MarshalIndent with two-space indentation and without
// HTML escaping.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ToObject converts a tree to its ordered object form.
func ToObject(t *Tree) *Object {
	obj := NewObject()
	if t == nil {
		return obj
	}
	t.Nodes.Each(func(key string, n Node) {
		obj.Set(key, NodeObject(n))
	})
	return obj
}

// NodeObject converts one node, attributes first, then its declaration, then
// its child container.
func NodeObject(n Node) *Object {
	h := n.Base()
	obj := NewObject()
	for _, attr := range h.Attrs {
		obj.Set(attr.Key, json.RawMessage(attr.Raw))
	}

	if declaration, ok := DeclarationOf(n); ok {
		obj.Set("declaration", declaration)
	} else if h.Level.HasDeclaration() {
		obj.Set("declaration", []string{})
	}

	if container := h.Level.Container(); container != "" {
		children := NewObject()
		ChildrenOf(n).Each(func(key string, child Node) {
			children.Set(key, NodeObject(child))
		})
		obj.Set(container, children)
	}
	return obj
}
