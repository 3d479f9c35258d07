// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"errors"
	"strings"
)

// List of Error reasons
const (
	// ErrReasonInvalidAddress is used when a mail address is empty or not RFC 5322 compliant
	ErrReasonInvalidAddress ErrReason = iota

	// ErrReasonEmptyRecipientList is used when a bulk recipient operation receives no addresses
	ErrReasonEmptyRecipientList

	// ErrReasonInvalidArgument is used when a header name or value is empty
	ErrReasonInvalidArgument

	// ErrReasonMissingConfiguration is used when a message is built without a session, a sender
	// or any receiver
	ErrReasonMissingConfiguration

	// ErrReasonAlreadyBuilt is used when an Email that already produced its Message is built or
	// modified again
	ErrReasonAlreadyBuilt
)

var (
	// ErrInvalidAddress is returned if an address does not pass validation.
	ErrInvalidAddress = &Error{Reason: ErrReasonInvalidAddress}

	// ErrEmptyRecipientList is returned if AddTo, AddCc, AddBcc, AddReplyTo or one of the Set*
	// list methods are called without any address.
	ErrEmptyRecipientList = &Error{Reason: ErrReasonEmptyRecipientList}

	// ErrInvalidArgument is returned if a header name or value is empty.
	ErrInvalidArgument = &Error{Reason: ErrReasonInvalidArgument}

	// ErrMissingConfiguration is returned if BuildMimeMessage or GetMailSession lack the minimum
	// required settings.
	ErrMissingConfiguration = &Error{Reason: ErrReasonMissingConfiguration}

	// ErrAlreadyBuilt is returned if BuildMimeMessage succeeded before on the same Email.
	ErrAlreadyBuilt = &Error{Reason: ErrReasonAlreadyBuilt}
)

// ErrReason represents a comparable reason on why an Email operation failed
type ErrReason int

// Error is the error type returned by all validating operations of the Email.
//
// Two Error values are considered equal by errors.Is when their Reason matches, so callers can
// compare against the exported sentinels like ErrInvalidAddress without caring about the
// operation or value that caused it.
type Error struct {
	// Reason is the comparable cause of the failure
	Reason ErrReason

	// Op is the name of the operation that failed, e.g. "AddBcc"
	Op string

	// Value is the offending input, if there was one
	Value string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface for the Error type.
func (e *Error) Error() string {
	var errMessage strings.Builder
	if e.Op != "" {
		errMessage.WriteString(e.Op)
		errMessage.WriteString(": ")
	}
	errMessage.WriteString(e.Reason.String())
	if e.Value != "" {
		errMessage.WriteString(` "`)
		errMessage.WriteString(e.Value)
		errMessage.WriteRune('"')
	}
	if e.Err != nil {
		errMessage.WriteString(": ")
		errMessage.WriteString(e.Err.Error())
	}
	return errMessage.String()
}

// Is implements the errors.Is functionality and compares the ErrReason.
func (e *Error) Is(errType error) bool {
	var t *Error
	if errors.As(errType, &t) && t != nil {
		return e.Reason == t.Reason
	}
	return false
}

// Unwrap returns the underlying error of the Error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// String satisfies the fmt.Stringer interface for the ErrReason type.
func (r ErrReason) String() string {
	switch r {
	case ErrReasonInvalidAddress:
		return "invalid mail address"
	case ErrReasonEmptyRecipientList:
		return "address list provided was invalid"
	case ErrReasonInvalidArgument:
		return "invalid argument"
	case ErrReasonMissingConfiguration:
		return "missing configuration"
	case ErrReasonAlreadyBuilt:
		return "the MIME message is already built"
	}
	return "unknown reason"
}

// newError returns a new Error for the given operation and reason
func newError(op string, r ErrReason, v string, err error) *Error {
	return &Error{Reason: r, Op: op, Value: v, Err: err}
}
