// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"errors"
	"io"
)

// newlineBytes terminates every line written by the Base64LineBreaker
var newlineBytes = []byte(SingleNewLine)

// ErrNoOutWriter is returned by Base64LineBreaker.Write if no output io.Writer is set.
var ErrNoOutWriter = errors.New("no io.Writer set for Base64LineBreaker")

// Base64LineBreaker sits between a base64 encoder and the msgWriter and breaks the encoded body
// into lines of MaxBodyLength characters (RFC 2045, section 6.8). Close writes the last,
// shorter line.
//
// It satisfies the io.WriteCloser interface.
type Base64LineBreaker struct {
	line [MaxBodyLength]byte
	used int
	out  io.Writer
}

// Write buffers data and writes every completed line, followed by a CRLF, to the output writer
func (l *Base64LineBreaker) Write(data []byte) (int, error) {
	if l.out == nil {
		return 0, ErrNoOutWriter
	}
	var n int
	for l.used+len(data) >= MaxBodyLength {
		fill := MaxBodyLength - l.used
		copy(l.line[l.used:], data[:fill])
		if err := l.flush(MaxBodyLength); err != nil {
			return n, err
		}
		n += fill
		data = data[fill:]
	}
	l.used += copy(l.line[l.used:], data)
	return n + len(data), nil
}

// Close writes the remaining partial line, if any
func (l *Base64LineBreaker) Close() error {
	if l.used == 0 {
		return nil
	}
	return l.flush(l.used)
}

// flush writes the first n buffered bytes as one line and empties the buffer
func (l *Base64LineBreaker) flush(n int) error {
	l.used = 0
	if _, err := l.out.Write(l.line[:n]); err != nil {
		return err
	}
	_, err := l.out.Write(newlineBytes)
	return err
}
