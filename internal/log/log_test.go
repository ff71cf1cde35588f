// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	err := h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "careful", Fields: log.Fields{"pr": 42}})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " W careful pr=42\n")

	buf.Reset()
	err = h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: deep"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " T deep\n")
}

func TestInitLogger_Env(t *testing.T) {
	t.Setenv("APIDIFF_LOG", "trace")
	InitLogger()
	assert.True(t, traceEnabled)

	t.Setenv("APIDIFF_LOG", "")
	InitLogger()
	assert.False(t, traceEnabled)
}
