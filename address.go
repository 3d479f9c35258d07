// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"errors"
	"mime"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// errEmptyAddress is the cause of an ErrInvalidAddress for blank input
var errEmptyAddress = errors.New("address is empty")

// validate checks the addr-spec part of parsed addresses. A validator.Validate caches struct
// information and is safe for concurrent use, so a single instance is shared.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Address is a validated mail address with an optional display name
type Address struct {
	// Name is the optional display name
	Name string

	// Address is the RFC 5322 addr-spec, e.g. "cats@kittens.com"
	Address string
}

// AddressList is an ordered list of Address. Duplicates are permitted.
type AddressList []*Address

// ParseAddress validates a single RFC 5322 address and returns it as Address. Both the plain form
// "cats@kittens.com" and the named form `"Cat" <cats@kittens.com>` are accepted.
func ParseAddress(raw string) (*Address, error) {
	return parseAddress("ParseAddress", raw, "")
}

// ParseAddressWithName validates the given address and assigns the given display name to it. An
// empty name keeps the name of the parsed address, if any.
func ParseAddressWithName(raw, name string) (*Address, error) {
	return parseAddress("ParseAddressWithName", raw, name)
}

// parseAddress is the shared implementation of the address parsers; op names the calling
// operation in the returned Error.
func parseAddress(op, raw, name string) (*Address, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, newError(op, ErrReasonInvalidAddress, raw, errEmptyAddress)
	}
	pa, err := mail.ParseAddress(raw)
	if err != nil {
		return nil, newError(op, ErrReasonInvalidAddress, raw, err)
	}
	if err = validate.Var(pa.Address, "required,email"); err != nil {
		return nil, newError(op, ErrReasonInvalidAddress, raw, err)
	}
	if name == "" {
		name = pa.Name
	}
	return &Address{Name: name, Address: pa.Address}, nil
}

// parseAddresses validates all given addresses. It either returns all of them or none.
func parseAddresses(op string, raw []string) (AddressList, error) {
	if len(raw) == 0 {
		return nil, newError(op, ErrReasonEmptyRecipientList, "", nil)
	}
	al := make(AddressList, 0, len(raw))
	for _, r := range raw {
		a, err := parseAddress(op, r, "")
		if err != nil {
			return nil, err
		}
		al = append(al, a)
	}
	return al, nil
}

// String returns the bare address if no display name is set, otherwise the RFC 5322 formatted
// `"Name" <address>` form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	if a.Name == "" {
		return a.Address
	}
	ma := &mail.Address{Name: a.Name, Address: a.Address}
	return ma.String()
}

// encode formats the Address for a message header, encoding a non-ASCII display name with the
// given word encoder in the given charset
func (a *Address) encode(en mime.WordEncoder, c Charset) string {
	if a.Name == "" || isASCII(a.Name) {
		return a.String()
	}
	return en.Encode(c.String(), convertString(c, a.Name)) + " <" + a.Address + ">"
}

// Strings returns the String form of all addresses in the list
func (al AddressList) Strings() []string {
	return lo.Map(al, func(a *Address, _ int) string {
		return a.String()
	})
}

// Addresses returns the bare addr-spec of all addresses in the list
func (al AddressList) Addresses() []string {
	return lo.Map(al, func(a *Address, _ int) string {
		return a.Address
	})
}

// clone returns a deep copy of the AddressList, so callers cannot modify the original
func (al AddressList) clone() AddressList {
	if al == nil {
		return AddressList{}
	}
	return lo.Map(al, func(a *Address, _ int) *Address {
		c := *a
		return &c
	})
}

// isASCII reports whether s only contains US-ASCII characters
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
