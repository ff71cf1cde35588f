// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apitree

import "fmt"

// Level is the nesting depth of a node in a declaration tree.
type Level int

const (
	LevelModule Level = iota
	LevelAPIType
	LevelAPI
	LevelSubAPI
)

var levelNames = []string{"module", "api_type", "api", "sub_api"}

// containerKeys holds the JSON key of each level's child container.
var containerKeys = []string{"api_types", "apis", "sub_apis", ""}

func (l Level) String() string {
	if l < LevelModule || l > LevelSubAPI {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Container returns the JSON key holding the children of a node at this
// level, or "" for the deepest level.
func (l Level) Container() string {
	if l < LevelModule || l > LevelSubAPI {
		return ""
	}
	return containerKeys[l]
}

// Next returns the level of this level's children.
func (l Level) Next() (Level, bool) {
	if l < LevelModule || l >= LevelSubAPI {
		return l, false
	}
	return l + 1, true
}

// HasDeclaration reports whether nodes at this level carry declarations.
func (l Level) HasDeclaration() bool {
	return l == LevelAPI || l == LevelSubAPI
}

// Valid reports whether l is one of the four schema levels.
func (l Level) Valid() bool {
	return l >= LevelModule && l <= LevelSubAPI
}

// ParseLevel converts a level name ("module", "api_type", ...) to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q, must be one of %v", s, levelNames)
}
