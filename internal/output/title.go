// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"strings"
	"time"
)

// TitleTimeLayout formats the last-updated stamp, e.g. "Tue Oct  6 09:05 PDT 2026".
const TitleTimeLayout = "Mon Jan _2 15:04 MST 2006"

// Title returns the Markdown header placed above a report. Empty commit or
// runURL values leave their line out. A nil loc means UTC.
func Title(commit, runURL string, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	b.WriteString("## API Diff Report\n")
	if commit != "" {
		fmt.Fprintf(&b, "Commit: %s\n", commit)
	}
	fmt.Fprintf(&b, "Last updated: %s\n", now.In(loc).Format(TitleTimeLayout))
	if runURL != "" {
		fmt.Fprintf(&b, "**[View workflow logs & download artifacts](%s)**\n", runURL)
	}
	b.WriteString("\n" + divider)
	return b.String()
}
