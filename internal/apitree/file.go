// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apitree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/apidiff/internal/log"
)

// DefaultFileName is the snapshot file written by extraction.
const DefaultFileName = "api_info.json"

// SnapshotFileNames lists the file names looked up, in order, when a snapshot
// is given as a directory.
var SnapshotFileNames = []string{DefaultFileName, "api_data.json"}

// ResolvePath maps a snapshot argument to a file. Directories are searched for
// SnapshotFileNames.
func ResolvePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	for _, name := range SnapshotFileNames {
		candidate := filepath.Join(path, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no %v in %s", ErrIO, SnapshotFileNames, path)
}

// ReadFile reads and parses a snapshot file or directory.
func ReadFile(path string) (*Tree, error) {
	file, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	log.Debugf("read snapshot %s (%s)", file, humanize.Bytes(uint64(len(data))))

	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return tree, nil
}

// WriteFile encodes t into dir/api_info.json, creating dir as needed.
func WriteFile(dir string, t *Tree) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := Encode(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Infof("wrote %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return path, nil
}
