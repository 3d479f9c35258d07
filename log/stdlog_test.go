// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var b bytes.Buffer
	l := New(&b, LevelDebug)
	if l.level != LevelDebug {
		t.Error("Expected level to be LevelDebug, got ", l.level)
	}
	if l.err == nil || l.warn == nil || l.info == nil || l.debug == nil {
		t.Error("Loggers not initialized")
	}
}

func TestStdlog(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		below   Level
		logFunc func(*Stdlog, Log)
		prefix  string
	}{
		{"Debugf", LevelDebug, LevelInfo, (*Stdlog).Debugf, "DEBUG: "},
		{"Infof", LevelInfo, LevelWarn, (*Stdlog).Infof, " INFO: "},
		{"Warnf", LevelWarn, LevelError, (*Stdlog).Warnf, " WARN: "},
		{"Errorf", LevelError, LevelError - 1, (*Stdlog).Errorf, "ERROR: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			l := New(&b, tt.level)

			tt.logFunc(l, Log{Op: "BuildMimeMessage", Format: "test %s", Messages: []interface{}{"foo"}})
			expected := tt.prefix + "[BuildMimeMessage] test foo\n"
			if !strings.HasSuffix(b.String(), expected) {
				t.Errorf("Expected %q, got %q", expected, b.String())
			}

			b.Reset()
			tt.logFunc(l, Log{Format: "test %s", Messages: []interface{}{"bar"}})
			expected = tt.prefix + "test bar\n"
			if !strings.HasSuffix(b.String(), expected) {
				t.Errorf("Expected %q, got %q", expected, b.String())
			}

			b.Reset()
			l.level = tt.below
			tt.logFunc(l, Log{Format: "test %s", Messages: []interface{}{"foo"}})
			if b.String() != "" {
				t.Errorf("%s message was not expected to be logged", tt.name)
			}
		})
	}
}
