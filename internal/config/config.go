// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and validation for the emailcompose command.
//
// A configuration is read from an optional YAML file, completed with defaults and finally
// overridden by EMAIL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	email "github.com/BHodel/testci-common-email"
)

// Config holds the complete emailcompose configuration
type Config struct {
	// Session configures the mail session of composed messages
	Session SessionConfig `yaml:"session"`

	// Message holds message defaults
	Message MessageConfig `yaml:"message"`

	// Logging configures the log output
	Logging LoggingConfig `yaml:"logging"`
}

// SessionConfig holds the mail session settings
type SessionConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	SSLPort           int           `yaml:"ssl_port"`
	SSLOnConnect      bool          `yaml:"ssl_on_connect"`
	StartTLS          bool          `yaml:"starttls"`
	StartTLSRequired  bool          `yaml:"starttls_required"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	Timeout           time.Duration `yaml:"timeout"`
	BounceAddress     string        `yaml:"bounce_address,omitempty"`
}

// MessageConfig holds defaults for composed messages
type MessageConfig struct {
	// From is the sender used if none is given on the command line
	From string `yaml:"from,omitempty"`

	// Charset of the message. UTF-8 is used if empty.
	Charset string `yaml:"charset,omitempty"`

	// Encoding is the body transfer encoding, e.g. "quoted-printable" or "base64"
	Encoding string `yaml:"encoding,omitempty"`

	// Headers are added to every composed message
	Headers map[string]string `yaml:"headers,omitempty"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Defaults returns the default configuration
func Defaults() Config {
	return Config{
		Session: SessionConfig{
			Port:              email.DefaultPort,
			SSLPort:           email.DefaultPortSSL,
			ConnectionTimeout: email.DefaultConnectionTimeout,
			Timeout:           email.DefaultTimeout,
		},
		Message: MessageConfig{
			Encoding: email.EncodingQP.String(),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads the configuration from the given YAML file. Environment variables in the file are
// expanded. Unset values are filled with Defaults and EMAIL_* environment variables override
// everything. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	cfg.applyEnvVars()
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Host == "" {
		return fmt.Errorf("session.host is required")
	}
	if c.Session.Port < 1 || c.Session.Port > 65535 {
		return fmt.Errorf("session.port %d is out of range", c.Session.Port)
	}
	if c.Session.SSLPort < 1 || c.Session.SSLPort > 65535 {
		return fmt.Errorf("session.ssl_port %d is out of range", c.Session.SSLPort)
	}
	if c.Session.ConnectionTimeout < 0 || c.Session.Timeout < 0 {
		return fmt.Errorf("session timeouts must not be negative")
	}
	switch email.Encoding(c.Message.Encoding) {
	case email.EncodingQP, email.EncodingB64, email.NoEncoding, email.EncodingUSASCII:
	default:
		return fmt.Errorf("unsupported message.encoding: %q", c.Message.Encoding)
	}
	if c.Message.From != "" {
		if _, err := email.ParseAddress(c.Message.From); err != nil {
			return fmt.Errorf("invalid message.from: %w", err)
		}
	}
	return nil
}

// Options returns the email.Option list that applies the configuration to a new email.Email
func (c *Config) Options() []email.Option {
	opts := []email.Option{
		email.WithSession(&email.Session{
			Host:              c.Session.Host,
			Port:              c.Session.Port,
			SSLPort:           c.Session.SSLPort,
			SSLOnConnect:      c.Session.SSLOnConnect,
			StartTLSEnabled:   c.Session.StartTLS || c.Session.StartTLSRequired,
			StartTLSRequired:  c.Session.StartTLSRequired,
			ConnectionTimeout: c.Session.ConnectionTimeout,
			Timeout:           c.Session.Timeout,
			BounceAddress:     c.Session.BounceAddress,
			From:              c.Message.From,
			Debug:             c.Logging.Debug,
		}),
		email.WithEncoding(email.Encoding(c.Message.Encoding)),
	}
	if c.Message.Charset != "" {
		opts = append(opts, email.WithCharset(email.Charset(c.Message.Charset)))
	}
	if c.Logging.Debug {
		opts = append(opts, email.WithDebugLog())
	}
	return opts
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("EMAIL_HOST"); v != "" {
		c.Session.Host = v
	}
	if v := os.Getenv("EMAIL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Session.Port = p
		}
	}
	if v := os.Getenv("EMAIL_SSL_ON_CONNECT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Session.SSLOnConnect = b
		}
	}
	if v := os.Getenv("EMAIL_STARTTLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Session.StartTLS = b
		}
	}
	if v := os.Getenv("EMAIL_CONNECTION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.ConnectionTimeout = d
		}
	}
	if v := os.Getenv("EMAIL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.Timeout = d
		}
	}

	if v := os.Getenv("EMAIL_FROM"); v != "" {
		c.Message.From = v
	}
	if v := os.Getenv("EMAIL_CHARSET"); v != "" {
		c.Message.Charset = v
	}

	if v := os.Getenv("EMAIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}
