// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"io"
	"time"
)

// Message is the immutable result of Email.BuildMimeMessage. All accessors return copies, so a
// Message can be handed to a transport while the caller keeps inspecting it.
type Message struct {
	charset   Charset
	content   Content
	encoding  Encoding
	from      *Address
	headers   *HeaderMap
	messageID string
	sentDate  time.Time
	session   *Session
	subject   string

	to      AddressList
	cc      AddressList
	bcc     AddressList
	replyTo AddressList
}

// From returns the sender address of the Message
func (m *Message) From() *Address {
	if m.from == nil {
		return nil
	}
	f := *m.from
	return &f
}

// To returns the "To" recipients of the Message
func (m *Message) To() AddressList {
	return m.to.clone()
}

// Cc returns the "Cc" recipients of the Message
func (m *Message) Cc() AddressList {
	return m.cc.clone()
}

// Bcc returns the "Bcc" recipients of the Message. They are never written to the wire.
func (m *Message) Bcc() AddressList {
	return m.bcc.clone()
}

// ReplyTo returns the "Reply-To" addresses of the Message
func (m *Message) ReplyTo() AddressList {
	return m.replyTo.clone()
}

// Recipients returns the addr-spec of all To, Cc and Bcc recipients, e.g. for SMTP RCPT TO
func (m *Message) Recipients() []string {
	var rl []string
	for _, al := range []AddressList{m.to, m.cc, m.bcc} {
		rl = append(rl, al.Addresses()...)
	}
	return rl
}

// Subject returns the subject of the Message
func (m *Message) Subject() string {
	return m.subject
}

// Charset returns the charset of the Message
func (m *Message) Charset() Charset {
	return m.charset
}

// Encoding returns the default transfer encoding of the Message body
func (m *Message) Encoding() Encoding {
	return m.encoding
}

// Content returns the body of the Message. It is nil if no content was set. A Multipart body is
// returned with copied part lists, so adding parts to it does not change the Message.
func (m *Message) Content() Content {
	return cloneContent(m.content)
}

// Headers returns the custom header fields of the Message in insertion order
func (m *Message) Headers() []HeaderField {
	return m.headers.Fields()
}

// Header returns the first value of the named custom header field
func (m *Message) Header(name string) string {
	return m.headers.Get(name)
}

// SentDate returns the date of the "Date" header
func (m *Message) SentDate() time.Time {
	return m.sentDate
}

// MessageID returns the message ID of the Message, without angle brackets
func (m *Message) MessageID() string {
	return m.messageID
}

// Session returns the Session the Message was built for
func (m *Message) Session() *Session {
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// WriteTo writes the Message in wire format into the given io.Writer and satisfies the
// io.WriterTo interface
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	mw := &msgWriter{
		writer:   w,
		charset:  m.charset,
		encoder:  getEncoder(m.encoding),
		encoding: m.encoding,
	}
	mw.writeMsg(m)
	return mw.n, mw.err
}

// Bytes returns the Message in wire format
func (m *Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewReader returns an io.Reader that reads the Message in wire format
func (m *Message) NewReader() (io.Reader, error) {
	b, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	return &reader{buf: b}, nil
}
