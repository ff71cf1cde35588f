// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package repomodule discovers the framework modules of an SDK repository and
// decides which of them a change touches. Module metadata comes from the Swift
// package manifest and the CocoaPods podspecs; only modules known to both are
// considered.
package repomodule
