// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

// Package log implements a logger interface that can be used within the email package
package log

const (
	LevelError Level = iota // Only errors
	LevelWarn               // Warnings and errors
	LevelInfo               // Informational messages, warnings and errors
	LevelDebug              // Everything
)

// OpString is the key of the operation attribute in structured log messages
const OpString = "op"

// GroupString is the group name of structured log attributes
const GroupString = "email"

// Level is the log level type
type Level int

// Log represents a log message type that holds the name of the builder operation that issued
// it, a Format string and a slice of Messages
type Log struct {
	Op       string
	Format   string
	Messages []interface{}
}

// Logger is the log interface for the email package
type Logger interface {
	Debugf(Log)
	Infof(Log)
	Warnf(Log)
	Errorf(Log)
}

// opPrefix returns the prefix for log messages with an operation name
func (l Log) opPrefix() string {
	if l.Op == "" {
		return ""
	}
	return "[" + l.Op + "] "
}
