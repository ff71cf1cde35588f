// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders diff trees as plain text or Markdown reports, along
// with the report title and a per api type summary table. Rendering is
// deterministic: the same tree always yields the same string.
package output
