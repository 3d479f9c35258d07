// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

// Package email provides a builder for MIME mail messages.
//
// An Email collects the sender, recipients, subject, headers, body and the settings of the mail
// session. BuildMimeMessage validates the collected state and composes an immutable Message that
// can be written in wire format with Message.WriteTo. Every Email builds exactly one Message.
package email

// VERSION is used in the default X-Mailer header
const VERSION = "0.1.0"
