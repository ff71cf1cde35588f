// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/differ"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testBuildFiltersCase represents a single test case for TestBuildFilters.
type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

// testCheckStringOperandCase represents a single test case for
// TestCheckStringOperand.
type testCheckStringOperandCase struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Filter Filter `yaml:"filter"`
	Want   bool   `yaml:"want"`
}

// testApplyCase represents a single test case for TestApply.
type testApplyCase struct {
	Name string   `yaml:"name"`
	Spec string   `yaml:"spec"`
	Want []string `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("filters_test_build_filters.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv("APIDIFF_FILTER_DELIM", tt.Delimiter)
			}

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter, got[i])
			}
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	var tests []testCheckStringOperandCase
	require.NoError(t, loadTestData("filters_test_check_string_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkStringOperand(tt.Value, tt.Filter))
		})
	}
}

// changes lists the key paths of the status nodes of tree.
func changes(tree *differ.Tree) []string {
	out := []string{}
	tree.Walk(func(path []string, n *differ.Node) bool {
		if n.Status == differ.StatusNone {
			return true
		}
		out = append(out, strings.Join(append(path, n.Key), "/"))
		return false
	})
	return out
}

func TestApply(t *testing.T) {
	newTree, err := apitree.ReadFile(filepath.Join("..", "differ", "testdata", "new.json"))
	require.NoError(t, err)
	oldTree, err := apitree.ReadFile(filepath.Join("..", "differ", "testdata", "old.json"))
	require.NoError(t, err)
	tree, err := differ.Diff(newTree, oldTree)
	require.NoError(t, err)

	var tests []testApplyCase
	require.NoError(t, loadTestData("filters_test_apply.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := changes(Apply(tree, BuildFilters(tt.Spec)))
			if len(tt.Want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.Want, got)
		})
	}

	// Filtering never touches the input.
	assert.Equal(t, []string{"Classes/Foo/qux", "Classes/Baz", "Classes/Added", "Classes/Gone"}, changes(tree))
}

func TestApply_KeepsMatchedSubtree(t *testing.T) {
	newTree, err := apitree.ReadFile(filepath.Join("..", "differ", "testdata", "new.json"))
	require.NoError(t, err)
	tree, err := differ.Diff(newTree, apitree.NewTree(apitree.LevelAPIType))
	require.NoError(t, err)

	got := Apply(tree, BuildFilters("key=Added"))
	n, err := got.Lookup("Classes", "Added", "one")
	require.NoError(t, err)
	assert.Equal(t, differ.StatusNone, n.Status)
	assert.Nil(t, Apply(nil, BuildFilters("key=Added")))
}
