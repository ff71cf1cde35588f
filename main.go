// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tfctl/apidiff/internal/cacheutil"
	"github.com/tfctl/apidiff/internal/command"
	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args)
}

// processSetOnly expands an @set argument into the flags listed under
// <command>.<set> in the config file. Without an @set, <command>.defaults is
// injected right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 { //nolint:mnd
		return args
	}

	idx := 2
	set := "defaults"
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += i
			args = slices.Delete(slices.Clone(args), idx, idx+1)
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, idx)
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. A flag followed by a non-flag argument takes it as its value.
// Repeatable flags keep every occurrence.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	type occurrence struct {
		name  string
		items []string
	}

	var groups []occurrence
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, occurrence{items: []string{a}})
			continue
		}
		name, _, hasValue := strings.Cut(a, "=")
		g := occurrence{name: name, items: []string{a}}
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && !isBoolFlag(name) {
			g.items = append(g.items, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := slices.Clone(args[:2])
	for i, g := range groups {
		if g.name != "" && last[g.name] != i && !repeatableFlags[g.name] {
			continue
		}
		out = append(out, g.items...)
	}
	return out
}

// repeatableFlags accumulate values instead of overriding each other.
var repeatableFlags = map[string]bool{
	"--modules": true,
	"-m":        true,
}

// boolFlags never consume the following argument.
var boolFlags = map[string]bool{
	"--color":      true,
	"-c":           true,
	"--pick":       true,
	"--skip-build": true,
	"--sort":       true,
	"-s":           true,
	"--summary":    true,
	"--title":      true,
	"--titles":     true,
	"-t":           true,
}

func isBoolFlag(name string) bool {
	return boolFlags[name]
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	} else if ok {
		if hours, _ := config.GetInt("cache.clean", 0); hours > 0 {
			if err := cacheutil.Purge(hours); err != nil {
				log.Debugf("cache purge err: err=%v", err)
			}
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" }) {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
