// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/apidiff/internal/log"
)

// snapshotDir holds downloaded api snapshots beneath the base directory.
const snapshotDir = "snapshots"

// Entry is a cached snapshot on disk. Key is the clear-text key, the file name
// is its sha256.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. APIDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/apidiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("APIDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "apidiff"), true
	}
	return "", false
}

// Enabled returns true unless APIDIFF_CACHE explicitly disables it
// ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("APIDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("created cache dir: path=%s", base)
	return base, true, nil
}

// SnapshotKey identifies one version of a remote snapshot. A new ETag yields a
// new key, so stale entries are never read.
func SnapshotKey(url, etag string) string {
	return url + "@" + etag
}

// entryPath returns where key lives and whether a file exists there.
func entryPath(key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, snapshotDir, encodeKey(key))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Read returns the cached snapshot for key.
func Read(key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := entryPath(key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s size=%s", key, humanize.Bytes(uint64(len(b))))
	return &Entry{Key: key, Path: p, Data: b}, true
}

// Write stores data for key. Creates directories as needed.
func Write(key string, data []byte) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	p, _ := entryPath(key)
	if p == "" {
		return nil // treat as disabled.
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", key)
	return nil
}

// Purge removes snapshots older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	root := filepath.Join(base, snapshotDir)
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			return nil //nolint:nilerr
		}
		if err := os.Remove(path); err == nil {
			log.Debugf("removed cache file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
