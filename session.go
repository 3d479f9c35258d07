// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"net"
	"strconv"
	"time"
)

// Defaults
const (
	// DefaultPort is the default connection port to the SMTP server
	DefaultPort = 25

	// DefaultPortSSL is the default connection port for SSL/TLS to the SMTP server
	DefaultPortSSL = 465

	// DefaultTimeout is the default socket I/O timeout
	DefaultTimeout = time.Second * 60

	// DefaultConnectionTimeout is the default socket connection timeout
	DefaultConnectionTimeout = time.Second * 60
)

// Session is the configuration of the transport a Message is handed to. It is created by
// Email.GetMailSession from the settings of the Email and is not modified afterwards.
//
// The Email does not open any connection. The timeouts are passed through for the transport.
type Session struct {
	// Host is the host name of the SMTP server
	Host string

	// Port is the plain/STARTTLS port of the SMTP server
	Port int

	// SSLPort is the port used if SSLOnConnect is set
	SSLPort int

	// SSLOnConnect requests an implicit TLS connection
	SSLOnConnect bool

	// StartTLSEnabled allows STARTTLS if the server offers it
	StartTLSEnabled bool

	// StartTLSRequired fails the delivery if the server does not offer STARTTLS
	StartTLSRequired bool

	// ConnectionTimeout is the socket connection timeout
	ConnectionTimeout time.Duration

	// Timeout is the socket I/O timeout
	Timeout time.Duration

	// BounceAddress is the envelope sender. If empty, the From address of the Message is used.
	BounceAddress string

	// From is the default sender used if the Email has no From address set
	From string

	// Debug enables debug logging of the transport
	Debug bool
}

// Addr returns the "host:port" address of the SMTP server, taking SSLOnConnect into account
func (s *Session) Addr() string {
	p := s.Port
	if s.SSLOnConnect {
		p = s.SSLPort
	}
	return net.JoinHostPort(s.Host, strconv.Itoa(p))
}

// EnvelopeFrom returns the address used for the SMTP MAIL FROM command of the given Message
func (s *Session) EnvelopeFrom(m *Message) string {
	if s.BounceAddress != "" {
		return s.BounceAddress
	}
	if m == nil || m.from == nil {
		return ""
	}
	return m.from.Address
}

// sessionConfig holds the settings of an Email from which a Session is created
type sessionConfig struct {
	host              string
	port              int
	sslPort           int
	sslOnConnect      bool
	startTLSEnabled   bool
	startTLSRequired  bool
	connectionTimeout time.Duration
	timeout           time.Duration
	bounceAddress     string
	from              string
	debug             bool
}

// defaultSessionConfig returns the sessionConfig defaults of a new Email
func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		port:              DefaultPort,
		sslPort:           DefaultPortSSL,
		connectionTimeout: DefaultConnectionTimeout,
		timeout:           DefaultTimeout,
	}
}

// newSession creates a Session from the sessionConfig. The host name is the only required setting.
func (c sessionConfig) newSession() (*Session, error) {
	if c.host == "" {
		return nil, newError("GetMailSession", ErrReasonMissingConfiguration, "",
			errNoHostName)
	}
	return &Session{
		Host:              c.host,
		Port:              c.port,
		SSLPort:           c.sslPort,
		SSLOnConnect:      c.sslOnConnect,
		StartTLSEnabled:   c.startTLSEnabled,
		StartTLSRequired:  c.startTLSRequired,
		ConnectionTimeout: c.connectionTimeout,
		Timeout:           c.timeout,
		BounceAddress:     c.bounceAddress,
		From:              c.from,
		Debug:             c.debug,
	}, nil
}

// sessionConfig returns the settings the Session was created from
func (s *Session) sessionConfig() sessionConfig {
	return sessionConfig{
		host:              s.Host,
		port:              s.Port,
		sslPort:           s.SSLPort,
		sslOnConnect:      s.SSLOnConnect,
		startTLSEnabled:   s.StartTLSEnabled,
		startTLSRequired:  s.StartTLSRequired,
		connectionTimeout: s.ConnectionTimeout,
		timeout:           s.Timeout,
		bounceAddress:     s.BounceAddress,
		from:              s.From,
		debug:             s.Debug,
	}
}
