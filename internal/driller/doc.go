// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted paths with optional array indexes against
// JSON documents, such as the encoded nodes of a diff tree.
package driller
