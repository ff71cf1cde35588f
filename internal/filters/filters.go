// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/differ"
	"github.com/tfctl/apidiff/internal/driller"
)

// filterRegex splits a filter expression into key, operator (with optional
// negation) and target. Examples: "status=added", "key!^FIR", "api_link=".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for values containing commas.
	delim := ","
	if d, ok := os.LookupEnv("APIDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// Apply returns the part of tree whose changes satisfy every filter. A changed
// node that matches is kept whole. One that does not is kept only as the
// parent of matching descendants. Without filters tree is returned as is.
func Apply(tree *differ.Tree, filters []Filter) *differ.Tree {
	if tree == nil || len(filters) == 0 {
		return tree
	}

	out := &differ.Tree{Root: tree.Root}
	for _, n := range tree.Nodes {
		if kept := keep(n, nil, tree.Root, filters); kept != nil {
			out.Nodes = append(out.Nodes, kept)
		}
	}
	log.Debugf("filters kept %d of %d top level nodes", len(out.Nodes), len(tree.Nodes))
	return out
}

func keep(n *differ.Node, path []string, root apitree.Level, filters []Filter) *differ.Node {
	if n.Status != differ.StatusNone && applyFilters(candidate{node: n, path: path, root: root}, filters) {
		return n
	}

	p := append(path[:len(path):len(path)], n.Key)
	var children []*differ.Node
	for _, c := range n.Children {
		if kept := keep(c, p, root, filters); kept != nil {
			children = append(children, kept)
		}
	}
	if len(children) == 0 {
		return nil
	}

	clone := *n
	clone.Children = children
	return &clone
}

// candidate is a changed node with the keys of its ancestors.
type candidate struct {
	node *differ.Node
	path []string
	root apitree.Level

	doc *gjson.Result
}

// values resolves a filter key to the candidate's values.
func (c *candidate) values(key string) []string {
	switch key {
	case "status":
		return []string{string(c.node.Status)}
	case "level":
		return []string{c.node.Level.String()}
	case "key":
		return []string{c.node.Key}
	case "module":
		return c.ancestor(apitree.LevelModule)
	case "api_type":
		return c.ancestor(apitree.LevelAPIType)
	}

	if c.doc == nil {
		data, err := json.Marshal(c.node.ToObject())
		if err != nil {
			log.Error("failed to encode " + c.node.Key + ": " + err.Error())
			return nil
		}
		doc := gjson.ParseBytes(data)
		c.doc = &doc
	}
	return driller.Strings(driller.Drill(*c.doc, key))
}

func (c *candidate) ancestor(level apitree.Level) []string {
	if c.node.Level == level {
		return []string{c.node.Key}
	}
	i := int(level - c.root)
	if i < 0 || i >= len(c.path) {
		return nil
	}
	return []string{c.path[i]}
}

// applyFilters returns true if the candidate matches all of the filters.
func applyFilters(c candidate, filters []Filter) bool {
	for _, filter := range filters {
		values := c.values(filter.Key)
		if len(values) == 0 {
			// Nothing to compare. Only a negated filter can hold.
			if !filter.Negate {
				return false
			}
			continue
		}

		matched := slices.ContainsFunc(values, func(v string) bool {
			return checkStringOperand(v, Filter{Operand: filter.Operand, Value: filter.Value})
		})
		if matched == filter.Negate {
			return false
		}
	}

	return true
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
