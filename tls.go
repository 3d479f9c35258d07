// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

// TLSPolicy describes how the transport of a Session is expected to use STARTTLS
type TLSPolicy int

const (
	// TLSMandatory requires that the connection to the server is encrypted using STARTTLS. If the
	// server does not support STARTTLS the delivery has to fail.
	TLSMandatory TLSPolicy = iota

	// TLSOpportunistic tries to establish an encrypted connection via STARTTLS. If the server does
	// not support it, the transport falls back to plaintext.
	TLSOpportunistic

	// NoTLS forces the transaction to be not encrypted
	NoTLS
)

// String is a standard method to convert a TLSPolicy into a printable format
func (p TLSPolicy) String() string {
	switch p {
	case TLSMandatory:
		return "TLSMandatory"
	case TLSOpportunistic:
		return "TLSOpportunistic"
	case NoTLS:
		return "NoTLS"
	default:
		return "UnknownPolicy"
	}
}

// TLSPolicy returns the STARTTLS policy of the Session. It does not apply to a connection with
// SSLOnConnect, which is encrypted from the start.
func (s *Session) TLSPolicy() TLSPolicy {
	switch {
	case s.StartTLSRequired:
		return TLSMandatory
	case s.StartTLSEnabled:
		return TLSOpportunistic
	default:
		return NoTLS
	}
}
