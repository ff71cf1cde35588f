// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/aws"
	"github.com/tfctl/apidiff/internal/cacheutil"
	"github.com/tfctl/apidiff/internal/log"
)

// Loader resolves snapshot specs. The zero value reads local files and
// creates an S3 client on first use.
type Loader struct {
	// S3 overrides the client used for s3:// specs.
	S3 aws.ObjectAPI
	// AWS options applied when the client is created.
	AWS []aws.Option
}

// Load reads the snapshot named by spec with a zero Loader.
func Load(ctx context.Context, spec string) (*apitree.Tree, error) {
	return (&Loader{}).Load(ctx, spec)
}

// Load reads the snapshot named by spec. spec is a local file, a directory
// holding a snapshot file, or s3://bucket/key.
func (l *Loader) Load(ctx context.Context, spec string) (*apitree.Tree, error) {
	if !aws.IsS3URL(spec) {
		return apitree.ReadFile(spec)
	}

	data, err := l.fetch(ctx, spec)
	if err != nil {
		return nil, err
	}
	tree, err := apitree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, err)
	}
	return tree, nil
}

// fetch returns the object body for spec, from the cache when its ETag is
// unchanged.
func (l *Loader) fetch(ctx context.Context, spec string) ([]byte, error) {
	bucket, key, err := aws.ParseS3URL(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apitree.ErrIO, err)
	}

	api, err := l.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apitree.ErrIO, err)
	}

	if etag, err := aws.ETag(ctx, api, bucket, key); err == nil && etag != "" {
		if entry, ok := cacheutil.Read(cacheutil.SnapshotKey(spec, etag)); ok {
			return entry.Data, nil
		}
	} else if err != nil {
		log.Debugf("skipping cache lookup: %v", err)
	}

	data, etag, err := aws.Fetch(ctx, api, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apitree.ErrIO, err)
	}
	if etag != "" {
		if err := cacheutil.Write(cacheutil.SnapshotKey(spec, etag), data); err != nil {
			log.Warnf("failed to cache %s: %v", spec, err)
		}
	}
	return data, nil
}

func (l *Loader) client(ctx context.Context) (aws.ObjectAPI, error) {
	if l.S3 != nil {
		return l.S3, nil
	}
	client, err := aws.NewS3(ctx, l.AWS...)
	if err != nil {
		return nil, err
	}
	l.S3 = client
	return client, nil
}
