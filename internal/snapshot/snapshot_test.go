// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/apitree"
)

type fakeS3 struct {
	body    []byte
	etag    string
	gets    int
	headErr error
}

func (f *fakeS3) HeadObject(context.Context, *s3v2.HeadObjectInput, ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3v2.HeadObjectOutput{ETag: awsv2.String(f.etag)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.gets++
	if f.body == nil {
		return nil, errors.New("NoSuchKey: " + awsv2.ToString(in.Key))
	}
	return &s3v2.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(f.body)),
		ETag: awsv2.String(f.etag),
	}, nil
}

func useTempCache(t *testing.T) {
	t.Helper()
	t.Setenv("APIDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("APIDIFF_CACHE", "1")
}

func TestLoad_Local(t *testing.T) {
	for _, spec := range []string{"testdata", "testdata/api_info.json"} {
		t.Run(spec, func(t *testing.T) {
			tree, err := Load(context.Background(), spec)
			require.NoError(t, err)
			assert.Equal(t, apitree.LevelModule, tree.Root)
			assert.Equal(t, []string{"FirebaseStorage"}, tree.Nodes.Keys())
		})
	}
}

func TestLoad_LocalMissing(t *testing.T) {
	_, err := Load(context.Background(), "testdata/nope.json")
	assert.ErrorIs(t, err, apitree.ErrIO)
}

func TestLoad_S3Cached(t *testing.T) {
	useTempCache(t)
	body, err := os.ReadFile("testdata/api_info.json")
	require.NoError(t, err)

	api := &fakeS3{body: body, etag: `"v1"`}
	l := &Loader{S3: api}

	for range 2 {
		tree, err := l.Load(context.Background(), "s3://snapshots/main/api_info.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"FirebaseStorage"}, tree.Nodes.Keys())
	}
	assert.Equal(t, 1, api.gets, "second load is served from the cache")

	api.etag = `"v2"`
	_, err = l.Load(context.Background(), "s3://snapshots/main/api_info.json")
	require.NoError(t, err)
	assert.Equal(t, 2, api.gets, "a changed object is downloaded again")
}

func TestLoad_S3HeadFailsStillFetches(t *testing.T) {
	useTempCache(t)
	api := &fakeS3{body: []byte(`{}`), etag: `"v1"`, headErr: errors.New("forbidden")}

	tree, err := (&Loader{S3: api}).Load(context.Background(), "s3://snapshots/empty.json")
	require.NoError(t, err)
	assert.True(t, tree.Empty())
	assert.Equal(t, 1, api.gets)
}

func TestLoad_S3Errors(t *testing.T) {
	useTempCache(t)

	tests := []struct {
		name string
		spec string
		api  *fakeS3
		is   error
	}{
		{"bad url", "s3://bucket-only", &fakeS3{}, apitree.ErrIO},
		{"missing object", "s3://b/missing.json", &fakeS3{etag: `"x"`}, apitree.ErrIO},
		{"bad json", "s3://b/bad.json", &fakeS3{body: []byte("nope"), etag: `"x"`}, apitree.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Loader{S3: tt.api}).Load(context.Background(), tt.spec)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}
