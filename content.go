// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

// Content is the body of a Message. It is either a single *Part or a *Multipart. The composer
// passes Content through untouched; only the msgWriter looks inside when the Message is written.
type Content interface {
	// ContentType returns the media type of the Content without parameters
	ContentType() ContentType

	writeContent(mw *msgWriter)
}

// Multipart is a multipart body consisting of an ordered list of Content. Parts may themselves be
// a Multipart, e.g. a multipart/alternative inside a multipart/mixed body.
type Multipart struct {
	subtype  MIMEType
	boundary string
	parts    []Content
}

// MultipartOption returns a function that can be used for grouping Multipart options
type MultipartOption func(*Multipart)

// NewMultipart returns a new Multipart of the given subtype. The boundary is drawn once at
// creation time unless WithBoundary overrides it.
func NewMultipart(st MIMEType, o ...MultipartOption) *Multipart {
	mp := &Multipart{subtype: st}
	for _, co := range o {
		if co == nil {
			continue
		}
		co(mp)
	}
	if mp.boundary == "" {
		mp.boundary = randomBoundary()
	}
	return mp
}

// WithBoundary overrides the randomly generated boundary of the Multipart
func WithBoundary(b string) MultipartOption {
	return func(mp *Multipart) {
		mp.boundary = b
	}
}

// WithParts adds the given parts to the Multipart
func WithParts(p ...Content) MultipartOption {
	return func(mp *Multipart) {
		mp.parts = append(mp.parts, p...)
	}
}

// AddPart appends a part to the Multipart
func (mp *Multipart) AddPart(p Content) {
	if p == nil {
		return
	}
	mp.parts = append(mp.parts, p)
}

// Boundary returns the boundary of the Multipart
func (mp *Multipart) Boundary() string {
	return mp.boundary
}

// ContentType returns the media type of the Multipart, e.g. "multipart/mixed"
func (mp *Multipart) ContentType() ContentType {
	return ContentType("multipart/" + mp.subtype.String())
}

// Count returns the number of direct parts of the Multipart
func (mp *Multipart) Count() int {
	return len(mp.parts)
}

// Parts returns a copy of the list of direct parts of the Multipart
func (mp *Multipart) Parts() []Content {
	return append([]Content(nil), mp.parts...)
}

// writeContent writes the Multipart and all of its parts through the given msgWriter
func (mp *Multipart) writeContent(mw *msgWriter) {
	mw.startMP(mp.subtype, mp.boundary)
	for _, p := range mp.parts {
		p.writeContent(mw)
	}
	mw.stopMP()
}
