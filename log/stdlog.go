// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"log"
)

// Stdlog writes the log messages of an Email through the standard library log package. Each
// level has its own log.Logger, so every line starts with its level.
type Stdlog struct {
	level Level
	err   *log.Logger
	warn  *log.Logger
	info  *log.Logger
	debug *log.Logger
}

// CallDepth is the call depth handed to log.Logger.Output
const CallDepth = 2

// New returns a Stdlog that writes all messages up to the given Level to output
func New(output io.Writer, level Level) *Stdlog {
	lf := log.Lmsgprefix | log.LstdFlags
	return &Stdlog{
		level: level,
		err:   log.New(output, "ERROR: ", lf),
		warn:  log.New(output, " WARN: ", lf),
		info:  log.New(output, " INFO: ", lf),
		debug: log.New(output, "DEBUG: ", lf),
	}
}

// output writes the Log to lg, prefixed with its operation, if lvl is enabled
func (l *Stdlog) output(lg *log.Logger, lvl Level, data Log) {
	if l.level < lvl {
		return
	}
	_ = lg.Output(CallDepth, fmt.Sprintf(data.opPrefix()+data.Format, data.Messages...))
}

// Debugf logs a debug message, e.g. session creation
func (l *Stdlog) Debugf(data Log) {
	l.output(l.debug, LevelDebug, data)
}

// Infof logs an informational message
func (l *Stdlog) Infof(data Log) {
	l.output(l.info, LevelInfo, data)
}

// Warnf logs a warning, e.g. a setter ignored after the build
func (l *Stdlog) Warnf(data Log) {
	l.output(l.warn, LevelWarn, data)
}

// Errorf logs an error
func (l *Stdlog) Errorf(data Log) {
	l.output(l.err, LevelError, data)
}
