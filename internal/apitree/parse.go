// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apitree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/apidiff/internal/log"
)

// Parse decodes a snapshot document, detecting whether its top-level keys are
// modules or api types. Empty documents yield an empty tree.
func Parse(data []byte) (*Tree, error) {
	doc, empty, err := document(data)
	if err != nil {
		return nil, err
	}
	if empty {
		return NewTree(LevelAPIType), nil
	}
	return parseDocument(doc, DetectRoot(doc))
}

// ParseAt decodes a snapshot document whose top-level keys are at root.
func ParseAt(data []byte, root Level) (*Tree, error) {
	if !root.Valid() {
		return nil, fmt.Errorf("invalid root level %v", root)
	}
	doc, empty, err := document(data)
	if err != nil {
		return nil, err
	}
	if empty {
		return NewTree(root), nil
	}
	return parseDocument(doc, root)
}

// DetectRoot guesses the level of a document's top-level keys. Module entries
// carry an "api_types" container or a "path" attribute; anything else is
// treated as an api type.
func DetectRoot(doc gjson.Result) Level {
	root := LevelAPIType
	doc.ForEach(func(_, value gjson.Result) bool {
		if value.Get(LevelModule.Container()).Exists() || value.Get("path").Exists() {
			root = LevelModule
			return false
		}
		return true
	})
	return root
}

func document(data []byte) (gjson.Result, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return gjson.Result{}, true, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return gjson.Result{}, false, fmt.Errorf("%w: document is not valid JSON", ErrSchemaMismatch)
	}
	doc := gjson.ParseBytes(trimmed)
	if !doc.IsObject() {
		return gjson.Result{}, false, fmt.Errorf("%w: document is not a JSON object", ErrSchemaMismatch)
	}
	empty := true
	doc.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return doc, empty, nil
}

func parseDocument(doc gjson.Result, root Level) (*Tree, error) {
	nodes, err := parseChildren(doc, root, nil)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed tree: root=%s nodes=%d", root, nodes.Len())
	return &Tree{Root: root, Nodes: nodes}, nil
}

func parseChildren(container gjson.Result, level Level, path []string) (*Children, error) {
	children := NewChildren()
	if !container.Exists() || container.Type == gjson.Null {
		return children, nil
	}
	if !container.IsObject() {
		return nil, schemaErr(path, "%s container is not an object", level.String())
	}

	var err error
	container.ForEach(func(key, value gjson.Result) bool {
		var n Node
		n, err = parseNode(key.String(), value, level, append(path[:len(path):len(path)], key.String()))
		if err != nil {
			return false
		}
		children.Put(n)
		return true
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

func parseNode(key string, value gjson.Result, level Level, path []string) (Node, error) {
	if !value.IsObject() {
		return nil, schemaErr(path, "%s is not an object", level)
	}

	header := Header{Key: key, Level: level}
	var (
		declaration []string
		container   gjson.Result
		err         error
	)

	value.ForEach(func(field, fieldValue gjson.Result) bool {
		name := field.String()
		switch {
		case name == level.Container() && name != "":
			container = fieldValue
		case name == "declaration" && level.HasDeclaration():
			declaration, err = parseDeclaration(fieldValue, path)
		case name == "status":
			// Diff output fed back in; status is recomputed.
		default:
			header.Attrs = append(header.Attrs, Attr{Key: name, Raw: fieldValue.Raw})
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	next, hasNext := level.Next()
	if !hasNext {
		if declaration == nil {
			return nil, schemaErr(path, "sub api has no declaration")
		}
		return &Leaf{Header: header, Declaration: declaration}, nil
	}

	children, err := parseChildren(container, next, path)
	if err != nil {
		return nil, err
	}

	if level == LevelAPI && children.Len() == 0 {
		if declaration == nil {
			return nil, schemaErr(path, "api has neither declaration nor sub apis")
		}
		return &Leaf{Header: header, Declaration: declaration}, nil
	}

	return &Branch{Header: header, Declaration: declaration, Children: children}, nil
}

func parseDeclaration(value gjson.Result, path []string) ([]string, error) {
	if !value.IsArray() {
		return nil, schemaErr(path, "declaration is not an array")
	}
	declaration := []string{}
	for _, line := range value.Array() {
		if line.Type != gjson.String {
			return nil, schemaErr(path, "declaration contains a non-string value")
		}
		declaration = append(declaration, line.String())
	}
	return declaration, nil
}

func schemaErr(path []string, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrSchemaMismatch, strings.Join(path, " > "), fmt.Sprintf(format, args...))
}
