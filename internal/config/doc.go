// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for apidiff's user
// configuration. The configuration is a YAML document named apidiff.yaml in the
// user's configuration directory, or the file named by APIDIFF_CFG_FILE. CI
// jobs normally use the environment variable to point at a checked-in file.
//
// Keys are dotted paths. Commands set Config.Namespace to their own name so
// that "report.timezone" is preferred over a bare "timezone".
package config
