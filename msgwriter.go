// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/text/transform"
)

const (
	// MaxHeaderLength defines the maximum line length for a mail header
	// RFC 2047 suggests 76 characters
	MaxHeaderLength = 76

	// MaxBodyLength defines the maximum line length for the mail body
	// RFC 2047 suggests 76 characters
	MaxBodyLength = 76

	// SingleNewLine represents a new line that can be used by the msgWriter to issue a carriage return
	SingleNewLine = "\r\n"
)

// msgWriter handles the I/O of a Message to an io.Writer
type msgWriter struct {
	charset  Charset
	depth    int
	encoder  mime.WordEncoder
	encoding Encoding
	err      error
	mpw      []*multipart.Writer
	n        int64
	pw       io.Writer
	writer   io.Writer
}

// nopCloser wraps an io.Writer with a no-op Close method
type nopCloser struct {
	io.Writer
}

// Close satisfies the io.Closer interface for nopCloser
func (nopCloser) Close() error { return nil }

// Write implements the io.Writer interface for msgWriter
func (mw *msgWriter) Write(p []byte) (int, error) {
	if mw.err != nil {
		return 0, fmt.Errorf("failed to write due to previous error: %w", mw.err)
	}

	var n int
	n, mw.err = mw.writer.Write(p)
	mw.n += int64(n)
	return n, mw.err
}

// writeMsg formats the Message and writes it to the io.Writer of the msgWriter
func (mw *msgWriter) writeMsg(m *Message) {
	date := m.sentDate.Format(time.RFC1123Z)
	if d := m.headers.Get(HeaderDate.String()); d != "" {
		date = d
	}
	mw.writeHeader(HeaderDate, date)
	mw.writeAddrHeader(HeaderFrom, AddressList{m.from})
	mw.writeAddrHeader(HeaderTo, m.to)
	mw.writeAddrHeader(HeaderCc, m.cc)
	mw.writeAddrHeader(HeaderReplyTo, m.replyTo)
	if m.subject != "" {
		mw.writeHeader(HeaderSubject, mw.encodeString(m.subject))
	}
	mw.writeHeader(HeaderMessageID, fmt.Sprintf("<%s>", m.messageID))
	if !m.headers.Has(HeaderXMailer.String()) {
		mw.writeHeader(HeaderXMailer, fmt.Sprintf("testci-common-email v%s", VERSION))
	}
	for _, f := range m.headers.Fields() {
		if strings.EqualFold(f.Name, HeaderMessageID.String()) ||
			strings.EqualFold(f.Name, HeaderDate.String()) {
			continue
		}
		for _, v := range f.Values {
			mw.writeHeader(Header(f.Name), mw.encodeString(v))
		}
	}
	mw.writeHeader(HeaderMIMEVersion, Mime10)

	c := m.content
	if c == nil {
		c = NewPart(TypeTextPlain, "")
	}
	c.writeContent(mw)
}

// writeAddrHeader writes an address header, if the given list is not empty
func (mw *msgWriter) writeAddrHeader(h AddrHeader, al AddressList) {
	var v []string
	for _, a := range al {
		if a == nil {
			continue
		}
		v = append(v, a.encode(mw.encoder, mw.charset))
	}
	if len(v) == 0 {
		return
	}
	mw.writeHeader(Header(h), v...)
}

// startMP writes a multipart beginning
func (mw *msgWriter) startMP(mt MIMEType, b string) {
	mp := multipart.NewWriter(mw)
	if b != "" {
		if err := mp.SetBoundary(b); err != nil {
			mw.err = fmt.Errorf("failed to set multipart boundary: %w", err)
			return
		}
	}

	ct := fmt.Sprintf("multipart/%s;\r\n boundary=\"%s\"", mt, mp.Boundary())

	if mw.depth == 0 {
		mw.writeString(fmt.Sprintf("%s: %s\r\n\r\n", HeaderContentType, ct))
	}
	if mw.depth > 0 {
		mw.newPart(map[string][]string{HeaderContentType.String(): {ct}})
	}
	mw.mpw = append(mw.mpw, mp)
	mw.depth++
}

// stopMP closes the multipart
func (mw *msgWriter) stopMP() {
	if mw.depth > 0 {
		if err := mw.mpw[mw.depth-1].Close(); err != nil && mw.err == nil {
			mw.err = err
		}
		mw.mpw = mw.mpw[:mw.depth-1]
		mw.depth--
	}
}

// newPart creates a new MIME multipart io.Writer and sets the partwriter to it
func (mw *msgWriter) newPart(h map[string][]string) {
	if mw.err != nil {
		return
	}
	mw.pw, mw.err = mw.mpw[mw.depth-1].CreatePart(h)
}

// writePart writes the corresponding part to the Message body
func (mw *msgWriter) writePart(p *Part) {
	cs := p.charset
	if cs == "" {
		cs = mw.charset
	}
	ct := p.ctype.String()
	if strings.HasPrefix(ct, "text/") {
		ct = fmt.Sprintf("%s; charset=%s", ct, cs)
	}
	enc := p.encoding
	if enc == "" {
		enc = mw.encoding
	}

	if mw.depth == 0 {
		mw.writeHeader(HeaderContentType, ct)
		mw.writeHeader(HeaderContentTransferEnc, enc.String())
		if p.desc != "" {
			mw.writeHeader(HeaderContentDescription, mw.encodeString(p.desc))
		}
		mw.writeString(SingleNewLine)
	}
	if mw.depth > 0 {
		mh := textproto.MIMEHeader{}
		mh.Add(HeaderContentType.String(), ct)
		mh.Add(HeaderContentTransferEnc.String(), enc.String())
		if p.desc != "" {
			mh.Add(HeaderContentDescription.String(), mw.encodeString(p.desc))
		}
		mw.newPart(mh)
	}
	mw.writeBody(p.writer, enc, cs)
}

// writeString writes a string into the msgWriter's io.Writer interface
func (mw *msgWriter) writeString(s string) {
	if mw.err != nil {
		return
	}
	var n int
	n, mw.err = io.WriteString(mw.writer, s)
	mw.n += int64(n)
}

// writeHeader writes a header into the msgWriter's io.Writer
func (mw *msgWriter) writeHeader(k Header, v ...string) {
	mw.writeString(string(k))
	if len(v) == 0 {
		mw.writeString(":" + SingleNewLine)
		return
	}
	mw.writeString(": ")

	// Chars left: MaxHeaderLength - "<Headername>: " - "CRLF"
	cl := MaxHeaderLength - len(k) - 4
	for i, s := range v {
		nfl := len(s)
		if cl-len(s) < 1 {
			if p := strings.IndexByte(s, ' '); p != -1 {
				mw.writeString(s[:p])
				mw.writeString(SingleNewLine + " ")
				mw.writeString(s[p+1:])
				cl = MaxHeaderLength - 1 - len(s[p+1:])
				if i != len(v)-1 {
					mw.writeString(", ")
					cl -= 2
				}
				continue
			}
		}
		if i > 0 && (cl < 1 || cl-nfl < 1) {
			mw.writeString(SingleNewLine + " ")
			cl = MaxHeaderLength - 1
		}
		mw.writeString(s)
		cl -= len(s)

		if i != len(v)-1 {
			mw.writeString(", ")
			cl -= 2
		}
	}
	mw.writeString(SingleNewLine)
}

// writeBody writes the output of the given write func into the current body writer. The text is
// converted into the given Charset first and then transfer encoded with the given Encoding.
func (mw *msgWriter) writeBody(f func(io.Writer) (int64, error), e Encoding, c Charset) {
	if mw.err != nil || f == nil {
		return
	}
	var w io.Writer = mw
	if mw.depth > 0 {
		w = mw.pw
	}

	var ew io.WriteCloser
	var lb *Base64LineBreaker
	switch e {
	case EncodingB64:
		lb = &Base64LineBreaker{out: w}
		ew = base64.NewEncoder(base64.StdEncoding, lb)
	case NoEncoding, EncodingUSASCII:
		ew = nopCloser{w}
	default:
		ew = quotedprintable.NewWriter(w)
	}

	var err error
	if enc := charsetEncoder(c); enc != nil {
		tw := transform.NewWriter(ew, enc)
		if _, err = f(tw); err == nil {
			err = tw.Close()
		}
	} else {
		_, err = f(ew)
	}
	if err != nil {
		if mw.err == nil {
			mw.err = fmt.Errorf("failed to write body: %w", err)
		}
		return
	}
	if err = ew.Close(); err != nil {
		mw.err = fmt.Errorf("failed to close body encoder: %w", err)
		return
	}
	if lb != nil {
		if err = lb.Close(); err != nil {
			mw.err = fmt.Errorf("failed to close base64 line breaker: %w", err)
		}
	}
}

// encodeString converts s into the charset of the msgWriter and encodes it with the word encoder
// if it contains non-ASCII characters
func (mw *msgWriter) encodeString(s string) string {
	if isASCII(s) {
		return s
	}
	return mw.encoder.Encode(mw.charset.String(), convertString(mw.charset, s))
}
