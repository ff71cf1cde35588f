// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot loads api snapshots from local files and directories or
// from S3. Downloaded snapshots are cached on disk by URL and ETag.
package snapshot
