// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package docparse

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/apitree"
)

func TestParseModuleDocs(t *testing.T) {
	types, err := ParseModuleDocs(context.Background(), filepath.Join("testdata", "jazzy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Classes", "Enumerations"}, types.Keys())

	classes, _ := types.Get("Classes")
	link, _ := classes.Base().Attrs.Get("api_type_link")
	assert.Equal(t, "Classes.html", link)
	assert.Equal(t, []string{"StorageReference", "StorageMetadata"}, apitree.ChildrenOf(classes).Keys())

	ref, _ := apitree.ChildrenOf(classes).Get("StorageReference")
	decl, ok := apitree.DeclarationOf(ref)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Objective-C @interface FIRStorageReference : NSObject",
		"Swift class StorageReference : NSObject",
	}, decl)

	subs := apitree.ChildrenOf(ref)
	assert.Equal(t, []string{"bucket", "child(_:)"}, subs.Keys())
	child, _ := subs.Get("child(_:)")
	decl, _ = apitree.DeclarationOf(child)
	assert.Equal(t, []string{"Swift func child ( _ path : String ) -> StorageReference"}, decl)

	meta, _ := apitree.ChildrenOf(classes).Get("StorageMetadata")
	assert.IsType(t, &apitree.Leaf{}, meta, "anchor links are not followed")
	decl, _ = apitree.DeclarationOf(meta)
	assert.Equal(t, []string{"Swift class StorageMetadata"}, decl)

	enums, _ := types.Get("Enumerations")
	assert.Equal(t, 0, apitree.ChildrenOf(enums).Len())
}

func TestParseModuleDocs_RoundTrip(t *testing.T) {
	types, err := ParseModuleDocs(context.Background(), filepath.Join("testdata", "jazzy"))
	require.NoError(t, err)

	tree := apitree.NewTree(apitree.LevelModule, ModuleNode("FirebaseStorage", "doc/FirebaseStorage", types))
	data, err := apitree.Encode(tree)
	require.NoError(t, err)

	back, err := apitree.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, apitree.LevelModule, back.Root)

	again, err := apitree.Encode(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestParseModuleDocs_Errors(t *testing.T) {
	_, err := ParseModuleDocs(context.Background(), filepath.Join("testdata", "missing"))
	assert.ErrorIs(t, err, apitree.ErrIO)

	_, err = ParseModuleDocs(context.Background(), filepath.Join("testdata", "broken"))
	assert.ErrorIs(t, err, apitree.ErrSchemaMismatch)
}

func TestStrippedText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"spans", `<div class="language"><span>let</span> <span>x</span><span>:</span> Int</div>`, "let x : Int"},
		{"nested whitespace", "<div class=\"language\">\n  <p>Swift</p>\n  <pre><code>func  a()</code></pre>\n</div>", "Swift func  a()"},
		{"empty", `<div class="language">   </div>`, ""},
		{"comments skipped", `<div class="language"><!-- note -->var a</div>`, "var a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, StrippedText(doc.Find("div.language")))
		})
	}
}
