// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"net/textproto"

	"github.com/samber/lo"
)

// HeaderField is a single custom header of a Message
type HeaderField struct {
	Name   string
	Values []string
}

// HeaderMap is an ordered map of custom header fields. Header names are compared in their
// canonical MIME form, so "x-mailer" and "X-Mailer" address the same field. The position of a
// field is the position of its first insertion.
type HeaderMap struct {
	fields []*HeaderField
	index  map[string]int
}

// NewHeaderMap returns an empty HeaderMap
func NewHeaderMap() *HeaderMap {
	return &HeaderMap{index: make(map[string]int)}
}

// Set sets the value of the named header field, replacing any existing values. An existing
// field keeps its position.
func (h *HeaderMap) Set(name, value string) {
	k := textproto.CanonicalMIMEHeaderKey(name)
	if i, ok := h.index[k]; ok {
		h.fields[i].Values = []string{value}
		return
	}
	h.index[k] = len(h.fields)
	h.fields = append(h.fields, &HeaderField{Name: name, Values: []string{value}})
}

// Add appends a value to the named header field, creating the field if it does not exist
func (h *HeaderMap) Add(name, value string) {
	k := textproto.CanonicalMIMEHeaderKey(name)
	if i, ok := h.index[k]; ok {
		h.fields[i].Values = append(h.fields[i].Values, value)
		return
	}
	h.Set(name, value)
}

// Get returns the first value of the named header field or an empty string
func (h *HeaderMap) Get(name string) string {
	if h == nil {
		return ""
	}
	i, ok := h.index[textproto.CanonicalMIMEHeaderKey(name)]
	if !ok || len(h.fields[i].Values) == 0 {
		return ""
	}
	return h.fields[i].Values[0]
}

// Has reports whether the named header field is present
func (h *HeaderMap) Has(name string) bool {
	if h == nil {
		return false
	}
	_, ok := h.index[textproto.CanonicalMIMEHeaderKey(name)]
	return ok
}

// Len returns the number of distinct header fields
func (h *HeaderMap) Len() int {
	if h == nil {
		return 0
	}
	return len(h.fields)
}

// Fields returns a copy of all header fields in insertion order
func (h *HeaderMap) Fields() []HeaderField {
	if h == nil {
		return nil
	}
	return lo.Map(h.fields, func(f *HeaderField, _ int) HeaderField {
		return HeaderField{Name: f.Name, Values: append([]string(nil), f.Values...)}
	})
}

// clone returns a deep copy of the HeaderMap
func (h *HeaderMap) clone() *HeaderMap {
	c := NewHeaderMap()
	if h == nil {
		return c
	}
	for _, f := range h.fields {
		for _, v := range f.Values {
			c.Add(f.Name, v)
		}
	}
	return c
}
