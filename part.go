// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"io"
)

// PartOption returns a function that can be used for grouping Part options
type PartOption func(*Part)

// Part is a single, non-multipart body of a Message. It can be used as the whole Content of an
// Email or as one part of a Multipart.
type Part struct {
	ctype    ContentType
	charset  Charset
	encoding Encoding
	desc     string
	writer   func(io.Writer) (int64, error)
}

// NewPart returns a new Part of the given ContentType with a string body
func NewPart(ct ContentType, body string, o ...PartOption) *Part {
	return NewPartFromWriter(ct, writeFuncFromBuffer(bytes.NewBufferString(body)), o...)
}

// NewPartFromWriter returns a new Part of the given ContentType whose body is produced by the
// given write func. The func may be called once per serialization of the Message.
func NewPartFromWriter(ct ContentType, w func(io.Writer) (int64, error), o ...PartOption) *Part {
	p := &Part{ctype: ct, writer: w}

	// Override defaults with optionally provided PartOption functions
	for _, co := range o {
		if co == nil {
			continue
		}
		co(p)
	}
	return p
}

// ContentType returns the currently set ContentType of the Part
func (p *Part) ContentType() ContentType {
	return p.ctype
}

// GetContent executes the WriteFunc of the Part and returns the content as byte slice
func (p *Part) GetContent() ([]byte, error) {
	var b bytes.Buffer
	if p.writer == nil {
		return nil, nil
	}
	if _, err := p.writer(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// GetCharset returns the charset of the Part. An empty Charset means that the charset of the
// Message is used.
func (p *Part) GetCharset() Charset {
	return p.charset
}

// GetEncoding returns the currently set Encoding of the Part. An empty Encoding means that the
// Message default is used.
func (p *Part) GetEncoding() Encoding {
	return p.encoding
}

// GetDescription returns the currently set Content-Description of the Part
func (p *Part) GetDescription() string {
	return p.desc
}

// writeContent writes the Part through the given msgWriter
func (p *Part) writeContent(mw *msgWriter) {
	mw.writePart(p)
}

// WithPartCharset overrides the Message charset for the Part
func WithPartCharset(c Charset) PartOption {
	return func(p *Part) {
		p.charset = c
	}
}

// WithPartEncoding overrides the default Part encoding
func WithPartEncoding(e Encoding) PartOption {
	return func(p *Part) {
		p.encoding = e
	}
}

// WithPartContentDescription sets the Content-Description of the Part
func WithPartContentDescription(d string) PartOption {
	return func(p *Part) {
		p.desc = d
	}
}

// writeFuncFromBuffer returns a write func that writes the content of the given buffer. The
// buffer is read without being drained, so the func can be called repeatedly.
func writeFuncFromBuffer(buf *bytes.Buffer) func(io.Writer) (int64, error) {
	return func(w io.Writer) (int64, error) {
		nb, err := w.Write(buf.Bytes())
		return int64(nb), err
	}
}
