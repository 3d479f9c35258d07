// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

// Package cmd provides the CLI commands for emailcompose.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	email "github.com/BHodel/testci-common-email"
	"github.com/BHodel/testci-common-email/internal/config"
)

// rootOptions holds the flag values of the root command
type rootOptions struct {
	cfgFile string
	host    string
	from    string
	to      []string
	cc      []string
	bcc     []string
	replyTo []string
	subject string
	body    string
	charset string
	headers []string
	output  string
	debug   bool
}

// Execute runs the root command with the arguments of the process.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd returns the emailcompose root command
func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "emailcompose",
		Short: "Compose a MIME mail message",
		Long: `emailcompose builds a MIME mail message from a configuration file, EMAIL_*
environment variables and command line flags, and writes it in wire format.

Example:
  emailcompose --host smtp.example.com --from me@example.com --to you@example.com \
    --subject "Hello" --body "Hi there"
  emailcompose -c email.yaml --to you@example.com -o message.eml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.cfgFile, "config", "c", "", "config file")
	f.StringVar(&o.host, "host", "", "SMTP host name of the mail session")
	f.StringVar(&o.from, "from", "", "sender address")
	f.StringArrayVar(&o.to, "to", nil, "To recipient (repeatable)")
	f.StringArrayVar(&o.cc, "cc", nil, "Cc recipient (repeatable)")
	f.StringArrayVar(&o.bcc, "bcc", nil, "Bcc recipient (repeatable)")
	f.StringArrayVar(&o.replyTo, "reply-to", nil, "Reply-To address (repeatable)")
	f.StringVar(&o.subject, "subject", "", "message subject")
	f.StringVar(&o.body, "body", "", "text/plain message body")
	f.StringVar(&o.charset, "charset", "", "message charset (default UTF-8)")
	f.StringArrayVar(&o.headers, "header", nil, "custom header as name=value (repeatable)")
	f.StringVarP(&o.output, "output", "o", "", "output file (default is stdout)")
	f.BoolVar(&o.debug, "debug", false, "enable debug output")

	return cmd
}

// run composes the message and writes it to out. Logs go to errOut.
func (o *rootOptions) run(out, errOut io.Writer) error {
	logger := log.NewWithOptions(errOut, log.Options{ReportTimestamp: true, Prefix: "emailcompose"})

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		return err
	}
	o.applyFlags(cfg)

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = log.WarnLevel
	}
	if cfg.Logging.Debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if err = cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return err
	}

	e := email.New(append(cfg.Options(), email.WithLogger(charmLogger{l: logger}))...)
	if err = o.configure(e, cfg); err != nil {
		logger.Error("invalid message", "err", err)
		return err
	}

	m, err := e.BuildMimeMessage()
	if err != nil {
		logger.Error("failed to build message", "err", err)
		return err
	}

	if o.output != "" {
		err = writeFile(o.output, m)
	} else {
		_, err = m.WriteTo(out)
	}
	if err != nil {
		logger.Error("failed to write message", "err", err)
		return err
	}
	logger.Info("message composed", "id", m.MessageID(), "recipients", len(m.Recipients()))
	return nil
}

// writeFile writes the Message to the named file
func writeFile(name string, m *email.Message) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	if _, err = m.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// applyFlags overrides the configuration with the command line flags that were set
func (o *rootOptions) applyFlags(cfg *config.Config) {
	if o.host != "" {
		cfg.Session.Host = o.host
	}
	if o.charset != "" {
		cfg.Message.Charset = o.charset
	}
	if o.debug {
		cfg.Logging.Debug = true
	}
}

// configure applies the message flags and configured headers to the Email
func (o *rootOptions) configure(e *email.Email, cfg *config.Config) error {
	if o.from != "" {
		if _, err := e.SetFrom(o.from); err != nil {
			return err
		}
	}
	for _, l := range []struct {
		addrs []string
		add   func(...string) error
	}{
		{o.to, e.AddTo},
		{o.cc, e.AddCc},
		{o.bcc, e.AddBcc},
		{o.replyTo, e.AddReplyTo},
	} {
		if len(l.addrs) == 0 {
			continue
		}
		if err := l.add(l.addrs...); err != nil {
			return err
		}
	}

	if len(cfg.Message.Headers) > 0 {
		if err := e.SetHeaders(cfg.Message.Headers); err != nil {
			return err
		}
	}
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, "=")
		if !ok {
			return fmt.Errorf("invalid header %q, expected name=value", h)
		}
		if err := e.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return err
		}
	}

	e.SetSubject(o.subject)
	if o.body != "" {
		if err := e.SetMsg(o.body); err != nil {
			return err
		}
	}
	return nil
}
