// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/apidiff/internal/apitree"
)

// Count tallies the changed nodes beneath one api type. Build errors are
// counted against their module with an empty APIType.
type Count struct {
	Module     string
	APIType    string
	Added      int
	Removed    int
	Modified   int
	BuildError int
}

// Total returns the number of changed nodes.
func (c Count) Total() int {
	return c.Added + c.Removed + c.Modified + c.BuildError
}

// Counts tallies status nodes per module and api type in tree order. Nodes
// inside an added or removed subtree are not counted separately.
func (t *Tree) Counts() []Count {
	var (
		counts []Count
		index  = map[[2]string]int{}
	)

	bump := func(module, apiType string, status Status) {
		k := [2]string{module, apiType}
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, Count{Module: module, APIType: apiType})
		}
		switch status {
		case StatusAdded:
			counts[i].Added++
		case StatusRemoved:
			counts[i].Removed++
		case StatusModified:
			counts[i].Modified++
		case StatusBuildError:
			counts[i].BuildError++
		}
	}

	t.Walk(func(path []string, n *Node) bool {
		if n.Status == StatusNone {
			return true
		}
		module := ancestor(t.Root, apitree.LevelModule, path, n)
		apiType := ancestor(t.Root, apitree.LevelAPIType, path, n)
		bump(module, apiType, n.Status)
		return !n.verbatim
	})
	return counts
}

// ancestor returns the key at level on the way to n, or "" when the tree does
// not reach that high.
func ancestor(root, level apitree.Level, path []string, n *Node) string {
	if n.Level == level {
		return n.Key
	}
	i := int(level - root)
	if i < 0 || i >= len(path) {
		return ""
	}
	return path[i]
}
