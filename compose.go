// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// fallbackMessageIDHost is used as right-hand side of a message ID if the session host is unusable
const fallbackMessageIDHost = "localhost.localdomain"

// compose turns the state of the given Email into a Message for the given Session and sender.
// The Email is not modified. Recipient lists and headers are copied.
func compose(e *Email, s *Session, from *Address) *Message {
	cs := e.charset
	if cs == "" {
		cs = CharsetUTF8
	}
	enc := e.encoding
	if enc == "" {
		enc = EncodingQP
	}

	headers := e.headers.clone()
	mid := strings.Trim(headers.Get(HeaderMessageID.String()), "<> ")
	if mid == "" {
		mid = newMessageID(s.Host)
	}

	date := e.SentDate()
	if d, err := mail.ParseDate(headers.Get(HeaderDate.String())); err == nil {
		date = d
	}

	sess := *s
	f := *from
	return &Message{
		charset:   cs,
		content:   cloneContent(e.content),
		encoding:  enc,
		from:      &f,
		headers:   headers,
		messageID: mid,
		sentDate:  date,
		session:   &sess,
		subject:   e.subject,
		to:        e.to.clone(),
		cc:        e.cc.clone(),
		bcc:       e.bcc.clone(),
		replyTo:   e.replyTo.clone(),
	}
}

// cloneContent copies the part lists of a Multipart tree, so parts added to the Content of an
// Email after the build do not show up in the Message. A *Part cannot be changed and is shared.
func cloneContent(c Content) Content {
	mp, ok := c.(*Multipart)
	if !ok || mp == nil {
		return c
	}
	parts := make([]Content, 0, len(mp.parts))
	for _, p := range mp.parts {
		parts = append(parts, cloneContent(p))
	}
	return &Multipart{subtype: mp.subtype, boundary: mp.boundary, parts: parts}
}

// newMessageID returns a unique message ID for the given host, without angle brackets
func newMessageID(host string) string {
	var id string
	u, err := uuid.NewV7()
	if err != nil {
		id = uuid.NewString()
	} else {
		id = u.String()
	}

	hn := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '<' || r == '>' || r == '@' {
			return -1
		}
		return r
	}, host)
	if hn == "" {
		hn = fallbackMessageIDHost
	}
	return fmt.Sprintf("%s@%s", id, hn)
}
