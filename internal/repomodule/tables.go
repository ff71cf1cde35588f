// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package repomodule

import (
	"slices"

	"github.com/tfctl/apidiff/internal/config"
)

// Language is the documentation flavor of a module.
type Language string

const (
	Swift Language = "swift"
	ObjC  Language = "objc"
)

// DefaultSwiftModules are documented from Swift sources.
var DefaultSwiftModules = []string{
	"FirebaseAnalyticsSwift",
	"FirebaseDatabaseSwift",
	"FirebaseFirestoreSwift",
	"FirebaseFunctions",
	"FirebaseInAppMessagingSwift",
	"FirebaseMLModelDownloader",
	"FirebaseRemoteConfigSwift",
	"FirebaseStorage",
}

// DefaultObjCModules are documented from their Objective-C umbrella header.
var DefaultObjCModules = []string{
	"FirebaseAnalytics",
	"FirebaseAppCheck",
	"FirebaseAppDistribution",
	"FirebaseAuth",
	"FirebaseCore",
	"FirebaseABTesting",
	"FirebaseCrash",
	"FirebaseCrashlytics",
	"FirebaseDatabase",
	"FirebaseDynamicLinks",
	"FirebaseFirestore",
	"FirebaseInstallations",
	"FirebaseInAppMessaging",
	"FirebaseMessaging",
	"FirebasePerformance",
	"FirebaseRemoteConfig",
}

// Tables maps module names to their documentation language.
type Tables struct {
	Swift []string
	ObjC  []string
}

// DefaultTables returns the built-in module tables.
func DefaultTables() Tables {
	return Tables{Swift: DefaultSwiftModules, ObjC: DefaultObjCModules}
}

// TablesFromConfig reads extract.swift_modules and extract.objc_modules,
// falling back to the built-in tables for keys that are not set.
func TablesFromConfig() Tables {
	swift, _ := config.GetStringSlice("extract.swift_modules", DefaultSwiftModules)
	objc, _ := config.GetStringSlice("extract.objc_modules", DefaultObjCModules)
	return Tables{Swift: swift, ObjC: objc}
}

// Language reports how the named module is documented.
func (t Tables) Language(name string) (Language, bool) {
	switch {
	case slices.Contains(t.Swift, name):
		return Swift, true
	case slices.Contains(t.ObjC, name):
		return ObjC, true
	}
	return "", false
}
