// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"

	emaillog "github.com/BHodel/testci-common-email/log"
)

// charmLogger forwards the log output of an email.Email to a charmbracelet logger
type charmLogger struct {
	l *log.Logger
}

// keyvals returns the structured attributes of a log message
func keyvals(l emaillog.Log) []interface{} {
	if l.Op == "" {
		return nil
	}
	return []interface{}{emaillog.OpString, l.Op}
}

// Debugf logs a debug message
func (c charmLogger) Debugf(l emaillog.Log) {
	c.l.Debug(fmt.Sprintf(l.Format, l.Messages...), keyvals(l)...)
}

// Infof logs an informational message
func (c charmLogger) Infof(l emaillog.Log) {
	c.l.Info(fmt.Sprintf(l.Format, l.Messages...), keyvals(l)...)
}

// Warnf logs a warning
func (c charmLogger) Warnf(l emaillog.Log) {
	c.l.Warn(fmt.Sprintf(l.Format, l.Messages...), keyvals(l)...)
}

// Errorf logs an error
func (c charmLogger) Errorf(l emaillog.Log) {
	c.l.Error(fmt.Sprintf(l.Format, l.Messages...), keyvals(l)...)
}
