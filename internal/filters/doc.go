// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows a diff tree to the changes matching --filter
// expressions.
//
// Filters are key-operator-target expressions combined with a configurable
// delimiter (default: comma, override with APIDIFF_FILTER_DELIM). A change is
// kept when it satisfies every filter.
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - @ : contains substring
//   - / : regular expression match
//   - < : lexically less than
//   - > : lexically greater than
//
// Every operator can be negated with a leading !, e.g. "status!=removed".
//
// Keys:
//
//   - status   : added, removed, modified or build_error
//   - level    : module, api_type, api or sub_api
//   - key      : the node's own key
//   - module   : the enclosing module
//   - api_type : the enclosing api type
//
// Any other key is a driller path into the node's JSON form, e.g.
// "api_link" or "declaration[0]". A list value matches when one of its
// elements does.
//
// Examples:
//
//   - "status=removed"           : only removals
//   - "api_type=Classes,key^FIR" : class changes whose key starts with FIR
//   - "declaration@Swift"        : changes with a Swift declaration
//   - "module!=FirebaseCore"     : everything outside FirebaseCore
package filters
