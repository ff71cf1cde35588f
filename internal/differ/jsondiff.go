// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/apidiff/internal/apitree"
	"github.com/tfctl/apidiff/internal/log"
)

// Identical reports whether two snapshot documents are structurally equal.
// Object key order is ignored. Empty documents compare as {}.
func Identical(newRaw, oldRaw []byte) (bool, error) {
	delta, err := compare(newRaw, oldRaw)
	if err != nil {
		return false, err
	}
	return !delta.Modified(), nil
}

// Delta renders the raw structural difference of two snapshot documents in
// the ASCII diff format. Identical documents yield "".
func Delta(newRaw, oldRaw []byte, color bool) (string, error) {
	delta, err := compare(newRaw, oldRaw)
	if err != nil {
		return "", err
	}
	if !delta.Modified() {
		return "", nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(normalize(oldRaw), &jdoc); err != nil {
		return "", fmt.Errorf("%w: %v", apitree.ErrSchemaMismatch, err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}
	return formatter.NewAsciiFormatter(jdoc, config).Format(delta)
}

func compare(newRaw, oldRaw []byte) (gojsondiff.Diff, error) {
	log.Debugf("compare: len(new)=%d len(old)=%d", len(newRaw), len(oldRaw))
	delta, err := gojsondiff.New().Compare(normalize(oldRaw), normalize(newRaw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compare snapshots: %v", apitree.ErrSchemaMismatch, err)
	}
	return delta, nil
}

func normalize(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []byte("{}")
	}
	return trimmed
}
