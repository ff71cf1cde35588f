// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key with an optional [n] or [*].
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Driller navigates JSON using a dot path. "declaration[0]" picks one element,
// "declaration[*]" or a bare "declaration" keeps the whole list. A single
// element list collapses to that element unless [*] is given.
func Driller(jsonData string, path string) gjson.Result {
	return Drill(gjson.Parse(jsonData), path)
}

// Drill is Driller over an already parsed document.
func Drill(current gjson.Result, path string) gjson.Result {
	if path == "" {
		return gjson.Result{}
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(matches[1])
		if !val.IsArray() {
			if matches[2] != "" {
				return gjson.Result{}
			}
			current = val
			continue
		}

		arr := val.Array()
		switch idx := matches[3]; {
		case idx == "*":
		case idx == "":
			if len(arr) == 1 {
				val = arr[0]
			}
		default:
			i, err := strconv.Atoi(idx)
			if err != nil || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		}
		current = val
	}

	return current
}

// Strings flattens a result into its string values. Arrays yield one string
// per element; missing and null results yield none.
func Strings(r gjson.Result) []string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		return []string{r.String()}
	}

	var out []string
	for _, item := range r.Array() {
		out = append(out, Strings(item)...)
	}
	return out
}
