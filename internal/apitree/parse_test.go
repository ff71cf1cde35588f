// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package apitree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse_APITypeRoot(t *testing.T) {
	doc := `{"Classes": {"apis": {"Foo": {"declaration": ["class Foo"], "sub_apis": {}}}}}`

	tree, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, LevelAPIType, tree.Root)
	assert.Equal(t, []string{"Classes"}, tree.Nodes.Keys())

	classes, ok := tree.Nodes.Get("Classes")
	require.True(t, ok)
	require.IsType(t, &Branch{}, classes)

	foo, ok := ChildrenOf(classes).Get("Foo")
	require.True(t, ok)
	leaf, ok := foo.(*Leaf)
	require.True(t, ok, "api without sub apis is a leaf")
	assert.Equal(t, []string{"class Foo"}, leaf.Declaration)
	assert.Equal(t, LevelAPI, leaf.Level)
}

func TestParse_ModuleRoot(t *testing.T) {
	tree, err := ReadFile(filepath.Join("testdata", "merged"))
	require.NoError(t, err)
	assert.Equal(t, LevelModule, tree.Root)

	module, ok := tree.Nodes.Get("FirebaseStorage")
	require.True(t, ok)
	path, ok := module.Base().Attrs.Get("path")
	assert.True(t, ok)
	assert.Equal(t, "doc/FirebaseStorage", path)

	classes, _ := ChildrenOf(module).Get("Classes")
	assert.Equal(t, []string{"StorageReference", "Storage"}, ChildrenOf(classes).Keys(), "document order is kept")

	ref, _ := ChildrenOf(classes).Get("StorageReference")
	branch, ok := ref.(*Branch)
	require.True(t, ok)
	assert.Len(t, branch.Declaration, 1)
	assert.Equal(t, []string{"bucket", "child(_:)"}, branch.Children.Keys())

	link, _ := branch.Attrs.Get("api_link")
	assert.Equal(t, "Classes/StorageReference.html", link)
}

func TestParse_KeyOrder(t *testing.T) {
	doc := `{"Zeta": {"apis": {}}, "Alpha": {"apis": {}}, "Mid": {"apis": {}}}`
	tree, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, tree.Nodes.Keys())
}

func TestParse_Empty(t *testing.T) {
	for _, doc := range []string{"", "   \n", "null", "{}"} {
		tree, err := Parse([]byte(doc))
		require.NoError(t, err, "doc %q", doc)
		assert.True(t, tree.Empty(), "doc %q", doc)
	}
}

func TestParse_MissingContainerIsEmpty(t *testing.T) {
	doc := `{"Classes": {"apis": {"Foo": {"declaration": ["class Foo"]}}}, "Protocols": {}}`
	tree, err := Parse([]byte(doc))
	require.NoError(t, err)

	protocols, _ := tree.Nodes.Get("Protocols")
	assert.Equal(t, 0, ChildrenOf(protocols).Len())

	classes, _ := tree.Nodes.Get("Classes")
	foo, _ := ChildrenOf(classes).Get("Foo")
	assert.IsType(t, &Leaf{}, foo)
}

func TestParse_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "sub api without declaration",
			doc:  `{"Classes": {"apis": {"Foo": {"declaration": [], "sub_apis": {"bar": {}}}}}}`,
			want: "Classes > Foo > bar",
		},
		{
			name: "api leaf without declaration",
			doc:  `{"Classes": {"apis": {"Foo": {"sub_apis": {}}}}}`,
			want: "neither declaration nor sub apis",
		},
		{
			name: "declaration not an array",
			doc:  `{"Classes": {"apis": {"Foo": {"declaration": "class Foo"}}}}`,
			want: "declaration is not an array",
		},
		{
			name: "declaration with numbers",
			doc:  `{"Classes": {"apis": {"Foo": {"declaration": [1]}}}}`,
			want: "non-string",
		},
		{
			name: "container not an object",
			doc:  `{"Classes": {"apis": ["Foo"]}}`,
			want: "container is not an object",
		},
		{
			name: "node not an object",
			doc:  `{"Classes": {"apis": {"Foo": "class Foo"}}}`,
			want: "is not an object",
		},
		{
			name: "invalid json",
			doc:  `{"Classes": `,
			want: "not valid JSON",
		},
		{
			name: "top level array",
			doc:  `[1, 2]`,
			want: "not a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaMismatch)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAt(t *testing.T) {
	doc := `{"Foo": {"declaration": ["class Foo"], "sub_apis": {"bar": {"declaration": ["var bar"]}}}}`
	tree, err := ParseAt([]byte(doc), LevelAPI)
	require.NoError(t, err)
	assert.Equal(t, LevelAPI, tree.Root)

	foo, _ := tree.Nodes.Get("Foo")
	assert.Equal(t, 1, ChildrenOf(foo).Len())

	_, err = ParseAt([]byte(doc), Level(-1))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	tree, err := ReadFile(filepath.Join("testdata", "merged"))
	require.NoError(t, err)

	data, err := Encode(tree)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"path": "doc/FirebaseStorage"`)

	again, err := Parse(data)
	require.NoError(t, err)

	second, err := Encode(again)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(second))
}

func TestObject_YAMLOrder(t *testing.T) {
	obj := NewObject().
		Set("zulu", "z").
		Set("alpha", []string{"a"}).
		Set("nested", NewObject().Set("b", 1).Set("a", 2))

	out, err := yaml.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "zulu: z\nalpha:\n    - a\nnested:\n    b: 1\n    a: 2\n", string(out))
}

func TestReadFile(t *testing.T) {
	tree, err := ReadFile(filepath.Join("testdata", "legacy"))
	require.NoError(t, err, "falls back to api_data.json")
	assert.Equal(t, []string{"Classes"}, tree.Nodes.Keys())

	_, err = ReadFile(filepath.Join("testdata", "nope"))
	assert.ErrorIs(t, err, ErrIO)

	_, err = ReadFile(t.TempDir())
	assert.ErrorIs(t, err, ErrIO)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tree := NewTree(LevelAPIType, &Branch{
		Header:   Header{Key: "Classes", Level: LevelAPIType},
		Children: NewChildren(&Leaf{Header: Header{Key: "Foo", Level: LevelAPI}, Declaration: []string{"class Foo"}}),
	})

	path, err := WriteFile(dir, tree)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), path)

	back, err := ReadFile(dir)
	require.NoError(t, err)
	classes, _ := back.Nodes.Get("Classes")
	foo, _ := ChildrenOf(classes).Get("Foo")
	decl, ok := DeclarationOf(foo)
	assert.True(t, ok)
	assert.Equal(t, []string{"class Foo"}, decl)
}

func TestEncode_NoHTMLEscape(t *testing.T) {
	tree := NewTree(LevelAPI, &Leaf{
		Header:      Header{Key: "isEqual(_:)", Level: LevelAPI},
		Declaration: []string{"func isEqual(_ other: Any?) -> Bool"},
	})
	data, err := Encode(tree)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-> Bool")
}
