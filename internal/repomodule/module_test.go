// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package repomodule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPackageDump(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "package.json"))
	require.NoError(t, err)

	modules, err := FromPackageDump(data)
	require.NoError(t, err)
	assert.Len(t, modules, 3)
	assert.Equal(t, Module{Name: "FirebaseAuthTarget", Scheme: "FirebaseAuth", Path: "FirebaseAuth/Sources"}, modules["FirebaseAuthTarget"])
	assert.Equal(t, "FirebaseStorage/Sources", modules["FirebaseStorage"].Path)
	_, ok := modules["FirebaseStorageInternal"]
	assert.False(t, ok, "targets without a product are ignored")

	_, err = FromPackageDump([]byte("not json"))
	assert.Error(t, err)
}

func TestFromPodspec(t *testing.T) {
	tests := []struct {
		name         string
		spec         string
		wantName     string
		wantUmbrella string
		wantErr      bool
	}{
		{
			name:         "string glob",
			spec:         `{"name": "FirebaseAuth", "public_header_files": "FirebaseAuth/Sources/Public/FirebaseAuth/*.h"}`,
			wantName:     "FirebaseAuth",
			wantUmbrella: "FirebaseAuth/Sources/Public/FirebaseAuth/FirebaseAuth.h",
		},
		{
			name:         "array glob",
			spec:         `{"name": "FirebaseCore", "public_header_files": ["FirebaseCore/Sources/Public/FirebaseCore/*.h", "Other/*.h"]}`,
			wantName:     "FirebaseCore",
			wantUmbrella: "FirebaseCore/Sources/Public/FirebaseCore/FirebaseCore.h",
		},
		{
			name:     "no headers",
			spec:     `{"name": "FirebaseStorage"}`,
			wantName: "FirebaseStorage",
		},
		{
			name:    "no name",
			spec:    `{"version": "1.0"}`,
			wantErr: true,
		},
		{
			name:    "invalid",
			spec:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, umbrella, err := FromPodspec([]byte(tt.spec))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantUmbrella, umbrella)
		})
	}
}

// fakeRunner answers tool invocations from a table keyed by the command line.
type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	out, ok := f.outputs[line]
	if !ok {
		return nil, errors.New("exit status 1")
	}
	return []byte(out), nil
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"FirebaseStorage.podspec", "FirebaseCore.podspec", "Broken.podspec", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o600))
	}

	dump, err := os.ReadFile(filepath.Join("testdata", "package.json"))
	require.NoError(t, err)

	runner := &fakeRunner{outputs: map[string]string{
		"swift package dump-package":          string(dump),
		"pod ipc spec FirebaseStorage.podspec": `{"name": "FirebaseStorage"}`,
		"pod ipc spec FirebaseCore.podspec":    `{"name": "FirebaseCore", "public_header_files": "FirebaseCore/Sources/Public/FirebaseCore/*.h"}`,
	}}

	modules, err := Discover(context.Background(), runner, root)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "FirebaseCore", modules[0].Name)
	assert.Equal(t, "FirebaseCore/Sources/Public/FirebaseCore/FirebaseCore.h", modules[0].UmbrellaHeader)
	assert.Equal(t, "FirebaseStorage", modules[1].Name)
	assert.Contains(t, runner.calls, "pod ipc spec Broken.podspec")
	assert.NotContains(t, runner.calls, "pod ipc spec README.md")

	_, err = Discover(context.Background(), &fakeRunner{}, root)
	assert.Error(t, err)
}

func TestDetectChanged(t *testing.T) {
	modules := []Module{
		{Name: "FirebaseStorage", Path: "FirebaseStorage/Sources"},
		{Name: "FirebaseAuth", Path: "FirebaseAuth/Sources"},
		{Name: "FirebaseCore", Path: "FirebaseCore/Sources"},
		{Name: "NoPath"},
	}

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "swift source",
			files: []string{"FirebaseStorage/Sources/Storage.swift"},
			want:  []string{"FirebaseStorage"},
		},
		{
			name:  "public header",
			files: []string{"FirebaseAuth/Sources/Public/FirebaseAuth/FIRAuth.h", "FirebaseStorage/Sources/Result.swift"},
			want:  []string{"FirebaseAuth", "FirebaseStorage"},
		},
		{
			name:  "private header and implementation ignored",
			files: []string{"FirebaseAuth/Sources/Auth/FIRAuth_Internal.h", "FirebaseCore/Sources/FIRApp.m"},
			want:  nil,
		},
		{
			name:  "many files one module",
			files: []string{"FirebaseCore/Sources/A.swift", "FirebaseCore/Sources/B.swift"},
			want:  []string{"FirebaseCore"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range DetectChanged(modules, tt.files) {
				got = append(got, m.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocCommand(t *testing.T) {
	tables := DefaultTables()

	name, args, err := DocCommand(Module{Name: "FirebaseStorage", Path: "FirebaseStorage/Sources"}, tables, "out/doc")
	require.NoError(t, err)
	assert.Equal(t, "jazzy", name)
	assert.Equal(t, []string{
		"--module", "FirebaseStorage",
		"--swift-build-tool", "xcodebuild",
		"--build-tool-arguments", "-scheme,FirebaseStorage,-destination,generic/platform=iOS,build",
		"--output", "out/doc",
	}, args)

	_, args, err = DocCommand(Module{Name: "FirebaseStorage", Scheme: "FirebaseStorageProduct"}, tables, "out/doc")
	require.NoError(t, err)
	assert.Equal(t, "FirebaseStorage", args[1])
	assert.Equal(t, "-scheme,FirebaseStorageProduct,-destination,generic/platform=iOS,build", args[5])

	_, args, err = DocCommand(Module{Name: "FirebaseAuth", Path: "FirebaseAuth/Sources"}, tables, "out/doc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"--objc",
		"--framework-root", "FirebaseAuth/Sources",
		"--umbrella-header", filepath.Join("FirebaseAuth/Sources", "Public", "FirebaseAuth", "FirebaseAuth.h"),
		"--output", "out/doc",
	}, args)

	_, args, err = DocCommand(Module{Name: "FirebaseCore", Path: "FirebaseCore/Sources", UmbrellaHeader: "x/FirebaseCore.h"}, tables, "o")
	require.NoError(t, err)
	assert.Contains(t, args, "x/FirebaseCore.h")

	_, _, err = DocCommand(Module{Name: "Mystery"}, tables, "o")
	assert.ErrorIs(t, err, ErrUnknownModule)
}

func TestBuildDocs(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"jazzy --module FirebaseStorage --swift-build-tool xcodebuild --build-tool-arguments -scheme,FirebaseStorage,-destination,generic/platform=iOS,build --output o": "done",
	}}
	m := Module{Name: "FirebaseStorage"}
	assert.NoError(t, BuildDocs(context.Background(), runner, ".", m, DefaultTables(), "o"))
	assert.Error(t, BuildDocs(context.Background(), runner, ".", m, DefaultTables(), "elsewhere"))
}

func TestTables(t *testing.T) {
	tables := Tables{Swift: []string{"A"}, ObjC: []string{"B"}}

	lang, ok := tables.Language("A")
	assert.True(t, ok)
	assert.Equal(t, Swift, lang)

	lang, ok = tables.Language("B")
	assert.True(t, ok)
	assert.Equal(t, ObjC, lang)

	_, ok = tables.Language("C")
	assert.False(t, ok)
}
