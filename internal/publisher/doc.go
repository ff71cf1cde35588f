// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package publisher posts api diff reports to GitHub pull requests.
//
// A report lives in a single issue comment identified by a hidden marker, so
// repeated runs against the same pull request edit that comment instead of
// adding new ones. The public-api-change label tracks whether the latest
// report contained changes.
package publisher
