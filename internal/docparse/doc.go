// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package docparse extracts declaration trees from jazzy generated HTML
// documentation. The module index lists api types and their apis; each api
// type page carries the api declarations and each api page the declarations of
// its members.
package docparse
