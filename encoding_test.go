// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"mime"
	"testing"
)

// TestEncoding_String tests the string method of the Encoding object
func TestEncoding_String(t *testing.T) {
	tests := []struct {
		name string
		e    Encoding
		want string
	}{
		{"Encoding: Base64", EncodingB64, "base64"},
		{"Encoding: QP", EncodingQP, "quoted-printable"},
		{"Encoding: None/8bit", NoEncoding, "8bit"},
		{"Encoding: US-ASCII/7bit", EncodingUSASCII, "7bit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.e.String() != tt.want {
				t.Errorf("wrong string for Encoding returned. Expected: %s, got: %s",
					tt.want, tt.e.String())
			}
		})
	}
}

// TestContentType_String tests the string method of the ContentType object
func TestContentType_String(t *testing.T) {
	tests := []struct {
		name string
		ct   ContentType
		want string
	}{
		{"ContentType: text/plain", TypeTextPlain, "text/plain"},
		{"ContentType: text/html", TypeTextHTML, "text/html"},
		{"ContentType: application/octet-stream", TypeAppOctetStream, "application/octet-stream"},
		{"ContentType: multipart/alternative", TypeMultipartAlternative, "multipart/alternative"},
		{"ContentType: multipart/mixed", TypeMultipartMixed, "multipart/mixed"},
		{"ContentType: multipart/related", TypeMultipartRelated, "multipart/related"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ct.String() != tt.want {
				t.Errorf("wrong string for Content-Type returned. Expected: %s, got: %s",
					tt.want, tt.ct.String())
			}
		})
	}
}

// TestMimeType_String tests the mime type method of the MIMEType object
func TestMimeType_String(t *testing.T) {
	tests := []struct {
		mt   MIMEType
		want string
	}{
		{MIMEAlternative, "alternative"},
		{MIMEMixed, "mixed"},
		{MIMERelated, "related"},
	}
	for _, tt := range tests {
		t.Run(tt.mt.String(), func(t *testing.T) {
			if tt.mt.String() != tt.want {
				t.Errorf("wrong string for mime type returned. Expected: %s, got: %s",
					tt.want, tt.mt.String())
			}
		})
	}
}

func TestConvertString(t *testing.T) {
	tests := []struct {
		name    string
		charset Charset
		input   string
		want    string
	}{
		{"UTF-8 is passed through", CharsetUTF8, "Grüße", "Grüße"},
		{"lower-case utf-8 is passed through", "utf-8", "Grüße", "Grüße"},
		{"empty charset is passed through", "", "Grüße", "Grüße"},
		{"ISO-8859-1 converts umlauts", CharsetISO88591, "Grüße", "Gr\xfc\xdfe"},
		{"windows-1252 converts euro sign", CharsetWindows1252, "5 €", "5 \x80"},
		{"unknown charset is passed through", "x-no-such-charset", "Grüße", "Grüße"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertString(tt.charset, tt.input); got != tt.want {
				t.Errorf("convertString() failed. Expected: %q, got: %q", tt.want, got)
			}
		})
	}
}

func TestCharsetEncoder(t *testing.T) {
	if charsetEncoder(CharsetUTF8) != nil {
		t.Error("expected no encoder for UTF-8")
	}
	if charsetEncoder(CharsetASCII) != nil {
		t.Error("expected no encoder for US-ASCII")
	}
	if charsetEncoder(CharsetKOI8R) == nil {
		t.Error("expected an encoder for KOI8-R")
	}
}

func TestGetEncoder(t *testing.T) {
	if getEncoder(EncodingB64) != mime.BEncoding {
		t.Error("expected B-encoding for base64")
	}
	if getEncoder(EncodingQP) != mime.QEncoding {
		t.Error("expected Q-encoding for quoted-printable")
	}
	if getEncoder(NoEncoding) != mime.QEncoding {
		t.Error("expected Q-encoding as fallback")
	}
}
