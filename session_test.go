// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"errors"
	"testing"
)

func TestSession_Addr(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want string
	}{
		{"plain port", Session{Host: "mail.example.com", Port: 25, SSLPort: 465}, "mail.example.com:25"},
		{"ssl on connect", Session{Host: "mail.example.com", Port: 25, SSLPort: 465, SSLOnConnect: true},
			"mail.example.com:465"},
		{"IPv6 host", Session{Host: "::1", Port: 587}, "[::1]:587"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Addr(); got != tt.want {
				t.Errorf("Addr() failed. Expected: %s, got: %s", tt.want, got)
			}
		})
	}
}

func TestSession_EnvelopeFrom(t *testing.T) {
	m := &Message{from: &Address{Address: testFrom}}
	s := &Session{}
	if s.EnvelopeFrom(m) != testFrom {
		t.Errorf("EnvelopeFrom() failed. Expected: %s, got: %s", testFrom, s.EnvelopeFrom(m))
	}
	if s.EnvelopeFrom(nil) != "" {
		t.Errorf("EnvelopeFrom() for nil message should be empty, got: %s", s.EnvelopeFrom(nil))
	}
	s.BounceAddress = "bounce@kittens.com"
	if s.EnvelopeFrom(m) != "bounce@kittens.com" {
		t.Errorf("EnvelopeFrom() failed. Expected: %s, got: %s", "bounce@kittens.com", s.EnvelopeFrom(m))
	}
}

func TestSessionConfig_newSession(t *testing.T) {
	t.Run("missing host name", func(t *testing.T) {
		_, err := defaultSessionConfig().newSession()
		if !errors.Is(err, ErrMissingConfiguration) {
			t.Errorf("newSession() returned wrong error: %v", err)
		}
		if !errors.Is(err, errNoHostName) {
			t.Errorf("newSession() error does not wrap errNoHostName: %v", err)
		}
	})
	t.Run("defaults", func(t *testing.T) {
		c := defaultSessionConfig()
		c.host = testHostName
		c.from = testFrom
		s, err := c.newSession()
		if err != nil {
			t.Fatalf("newSession() failed: %s", err)
		}
		want := Session{
			Host:              testHostName,
			Port:              DefaultPort,
			SSLPort:           DefaultPortSSL,
			ConnectionTimeout: DefaultConnectionTimeout,
			Timeout:           DefaultTimeout,
			From:              testFrom,
		}
		if *s != want {
			t.Errorf("newSession() failed. Expected: %+v, got: %+v", want, *s)
		}
	})
}

func TestSession_sessionConfig(t *testing.T) {
	c := defaultSessionConfig()
	c.host = "mail.example.com"
	c.sslOnConnect = true
	c.bounceAddress = "bounce@example.com"
	c.from = "me@example.com"
	c.debug = true
	s, err := c.newSession()
	if err != nil {
		t.Fatalf("newSession() failed: %s", err)
	}
	if got := s.sessionConfig(); got != c {
		t.Errorf("sessionConfig() failed. Expected: %+v, got: %+v", c, got)
	}
}
