// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two declaration trees and produces a diff tree
// annotating the nodes that were added, removed or modified. Unchanged
// subtrees are pruned.
package differ
