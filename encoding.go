// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"mime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset represents a character set for the encoding
type Charset string

// ContentType represents a content type for the Message
type ContentType string

// Encoding represents a MIME encoding scheme like quoted-printable or base64.
type Encoding string

// MIMEType represents the MIME subtype of a multipart body
type MIMEType string

const (
	// EncodingB64 represents the Base64 encoding as specified in RFC 2045.
	EncodingB64 Encoding = "base64"

	// EncodingQP represents the "quoted-printable" encoding as specified in RFC 2045.
	EncodingQP Encoding = "quoted-printable"

	// EncodingUSASCII represents encoding with only US-ASCII characters (aka 7Bit)
	EncodingUSASCII Encoding = "7bit"

	// NoEncoding avoids any character encoding (except of the mail headers)
	NoEncoding Encoding = "8bit"
)

// List of common charsets
const (
	// CharsetUTF7 represents the "UTF-7" charset
	CharsetUTF7 Charset = "UTF-7"

	// CharsetUTF8 represents the "UTF-8" charset
	CharsetUTF8 Charset = "UTF-8"

	// CharsetASCII represents the "US-ASCII" charset
	CharsetASCII Charset = "US-ASCII"

	// CharsetISO88591 represents the "ISO-8859-1" charset
	CharsetISO88591 Charset = "ISO-8859-1"

	// CharsetISO88592 represents the "ISO-8859-2" charset
	CharsetISO88592 Charset = "ISO-8859-2"

	// CharsetISO88595 represents the "ISO-8859-5" charset
	CharsetISO88595 Charset = "ISO-8859-5"

	// CharsetISO88597 represents the "ISO-8859-7" charset
	CharsetISO88597 Charset = "ISO-8859-7"

	// CharsetISO885915 represents the "ISO-8859-15" charset
	CharsetISO885915 Charset = "ISO-8859-15"

	// CharsetISO2022JP represents the "ISO-2022-JP" charset
	CharsetISO2022JP Charset = "ISO-2022-JP"

	// CharsetWindows1251 represents the "windows-1251" charset
	CharsetWindows1251 Charset = "windows-1251"

	// CharsetWindows1252 represents the "windows-1252" charset
	CharsetWindows1252 Charset = "windows-1252"

	// CharsetKOI8R represents the "KOI8-R" charset
	CharsetKOI8R Charset = "KOI8-R"

	// CharsetBig5 represents the "Big5" charset
	CharsetBig5 Charset = "Big5"

	// CharsetGB18030 represents the "GB18030" charset
	CharsetGB18030 Charset = "GB18030"

	// CharsetShiftJIS represents the "Shift_JIS" charset
	CharsetShiftJIS Charset = "Shift_JIS"

	// CharsetEUCKR represents the "EUC-KR" charset
	CharsetEUCKR Charset = "EUC-KR"
)

// List of MIME versions
const (
	// Mime10 is the MIME Version 1.0
	Mime10 = "1.0"
)

// List of common content types
const (
	TypeAppOctetStream       ContentType = "application/octet-stream"
	TypeMultipartAlternative ContentType = "multipart/alternative"
	TypeMultipartMixed       ContentType = "multipart/mixed"
	TypeMultipartRelated     ContentType = "multipart/related"
	TypeTextHTML             ContentType = "text/html"
	TypeTextPlain            ContentType = "text/plain"
)

// List of MIMETypes
const (
	MIMEAlternative MIMEType = "alternative"
	MIMEMixed       MIMEType = "mixed"
	MIMERelated     MIMEType = "related"
)

// String is a standard method to convert an Charset into a printable format
func (c Charset) String() string {
	return string(c)
}

// String is a standard method to convert an ContentType into a printable format
func (c ContentType) String() string {
	return string(c)
}

// String is a standard method to convert an Encoding into a printable format
func (e Encoding) String() string {
	return string(e)
}

// String is a standard method to convert an MIMEType into a printable format
func (m MIMEType) String() string {
	return string(m)
}

// charsetEncoder returns an x/text encoder that converts UTF-8 input into the given Charset.
//
// It returns nil if no conversion is needed (UTF-8, US-ASCII) or if the charset is not known to
// the IANA index, in which case the text is written as is. Characters that cannot be represented
// in the target charset are replaced instead of failing the whole message.
func charsetEncoder(c Charset) *encoding.Encoder {
	switch {
	case c == "":
		return nil
	case strings.EqualFold(c.String(), CharsetUTF8.String()):
		return nil
	case strings.EqualFold(c.String(), CharsetASCII.String()):
		return nil
	}
	enc, err := ianaindex.MIME.Encoding(c.String())
	if err != nil || enc == nil {
		return nil
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder())
}

// convertString converts s from UTF-8 into the given Charset. If the charset is unknown or the
// conversion fails, s is returned unchanged.
func convertString(c Charset, s string) string {
	enc := charsetEncoder(c)
	if enc == nil {
		return s
	}
	cs, err := enc.String(s)
	if err != nil {
		return s
	}
	return cs
}

// getEncoder returns the mime.WordEncoder for header encoding that matches the given Encoding
func getEncoder(e Encoding) mime.WordEncoder {
	switch e {
	case EncodingB64:
		return mime.BEncoding
	default:
		return mime.QEncoding
	}
}
