// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package apitree models one snapshot of a module's public API surface as a
// fixed-depth tree: module, api type, api and sub api. Apis and sub apis carry
// declarations, one rendered signature per language projection.
//
// Trees are read from the api_info.json documents produced by extraction.
// Parsing keeps document key order so that everything derived from a tree is
// deterministic.
package apitree
