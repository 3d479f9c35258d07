// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import (
	"errors"
	"mime"
	"net/mail"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/BHodel/testci-common-email/log"
)

var (
	// errNoHostName is the cause of ErrMissingConfiguration if no session host is configured
	errNoHostName = errors.New("cannot find valid hostname for mail session")

	// errNoFromAddress is the cause of ErrMissingConfiguration if no sender is configured
	errNoFromAddress = errors.New("from address required")

	// errNoRecipients is the cause of ErrMissingConfiguration if To, Cc and Bcc are empty
	errNoRecipients = errors.New("at least one receiver address required")

	// errEmptyHeader is the cause of ErrInvalidArgument for empty header names or values
	errEmptyHeader = errors.New("header name and value must not be empty")

	// errMalformedHeader is the cause of ErrInvalidArgument for header names or values that
	// would break the header section of the message
	errMalformedHeader = errors.New("header contains invalid characters")

	// errReservedHeader is the cause of ErrInvalidArgument for header fields that are generated
	// from the settings of the Email
	errReservedHeader = errors.New("header is generated from the message settings")

	// errInvalidDate is the cause of ErrInvalidArgument for a "Date" header that is not an
	// RFC 5322 date
	errInvalidDate = errors.New("header is not a valid RFC 5322 date")

	// errEmptyMessage is the cause of ErrInvalidArgument for an empty text body
	errEmptyMessage = errors.New("invalid message supplied")
)

// Email collects everything needed to compose a mail Message. Configure it with the Set* and
// Add* methods, then call BuildMimeMessage exactly once. An Email is not safe for concurrent use.
type Email struct {
	// bcc, cc, replyTo and to are the recipient lists of the Email
	bcc     AddressList
	cc      AddressList
	replyTo AddressList
	to      AddressList

	// built is set by the first successful BuildMimeMessage
	built bool

	// charset is the configured charset. It is empty unless set explicitly.
	charset Charset

	// clock returns the current time and is used if no sent date is set
	clock func() time.Time

	// content is the body of the Email
	content Content

	// encoding is the default transfer encoding for the body
	encoding Encoding

	// from is the sender address
	from *Address

	// headers are the custom header fields of the Email
	headers *HeaderMap

	// logger is used for debug messages and warnings
	logger log.Logger

	// message is the Message produced by BuildMimeMessage
	message *Message

	// sentDate is the explicitly set date of the "Date" header
	sentDate *time.Time

	// session is the memoized Session created from sessionCfg
	session *Session

	// sessionCfg holds the settings a Session is created from
	sessionCfg sessionConfig

	// subject is the subject of the Email
	subject string
}

// Option returns a function that can be used for grouping Email options
type Option func(*Email)

// New returns a new, empty Email
func New(o ...Option) *Email {
	e := &Email{
		clock:      time.Now,
		headers:    NewHeaderMap(),
		sessionCfg: defaultSessionConfig(),
	}

	// Override defaults with optionally provided Option functions
	for _, co := range o {
		if co == nil {
			continue
		}
		co(e)
	}

	if e.logger == nil {
		e.logger = log.New(os.Stderr, log.LevelDebug)
	}
	return e
}

// WithHostName sets the host name of the mail session
func WithHostName(h string) Option {
	return func(e *Email) {
		e.sessionCfg.host = h
	}
}

// WithCharset sets the charset of the Email
func WithCharset(c Charset) Option {
	return func(e *Email) {
		e.charset = c
	}
}

// WithEncoding overrides the default quoted-printable body encoding
func WithEncoding(enc Encoding) Option {
	return func(e *Email) {
		e.encoding = enc
	}
}

// WithLogger overrides the default log.Logger
func WithLogger(l log.Logger) Option {
	return func(e *Email) {
		e.logger = l
	}
}

// WithDebugLog enables debug logging of the Email operations
func WithDebugLog() Option {
	return func(e *Email) {
		e.sessionCfg.debug = true
	}
}

// WithClock overrides the clock used to determine the sent date if none is set
func WithClock(c func() time.Time) Option {
	return func(e *Email) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithDefaultFrom sets the sender of the mail session, which is used if the Email has no From
// address set
func WithDefaultFrom(addr string) Option {
	return func(e *Email) {
		e.sessionCfg.from = addr
	}
}

// WithSession uses the given Session instead of creating one from the Email settings
func WithSession(s *Session) Option {
	return func(e *Email) {
		e.useSession(s)
	}
}

// AddTo validates the given addresses and adds them to the "To" recipients. Either all
// addresses are added or none.
func (e *Email) AddTo(addrs ...string) error {
	return e.addAddrs("AddTo", &e.to, addrs)
}

// AddToFormat validates the given address and adds it with the given display name to the "To"
// recipients
func (e *Email) AddToFormat(name, addr string) error {
	return e.addAddrFormat("AddToFormat", &e.to, name, addr)
}

// SetTo replaces the "To" recipients with the given addresses
func (e *Email) SetTo(addrs ...string) error {
	return e.setAddrs("SetTo", &e.to, addrs)
}

// AddCc validates the given addresses and adds them to the "Cc" recipients. Either all
// addresses are added or none.
func (e *Email) AddCc(addrs ...string) error {
	return e.addAddrs("AddCc", &e.cc, addrs)
}

// AddCcFormat validates the given address and adds it with the given display name to the "Cc"
// recipients
func (e *Email) AddCcFormat(name, addr string) error {
	return e.addAddrFormat("AddCcFormat", &e.cc, name, addr)
}

// SetCc replaces the "Cc" recipients with the given addresses
func (e *Email) SetCc(addrs ...string) error {
	return e.setAddrs("SetCc", &e.cc, addrs)
}

// AddBcc validates the given addresses and adds them to the "Bcc" recipients. Either all
// addresses are added or none.
func (e *Email) AddBcc(addrs ...string) error {
	return e.addAddrs("AddBcc", &e.bcc, addrs)
}

// AddBccFormat validates the given address and adds it with the given display name to the "Bcc"
// recipients
func (e *Email) AddBccFormat(name, addr string) error {
	return e.addAddrFormat("AddBccFormat", &e.bcc, name, addr)
}

// SetBcc replaces the "Bcc" recipients with the given addresses
func (e *Email) SetBcc(addrs ...string) error {
	return e.setAddrs("SetBcc", &e.bcc, addrs)
}

// AddReplyTo validates the given addresses and adds them to the "Reply-To" addresses. Either all
// addresses are added or none.
func (e *Email) AddReplyTo(addrs ...string) error {
	return e.addAddrs("AddReplyTo", &e.replyTo, addrs)
}

// AddReplyToFormat validates the given address and adds it with the given display name to the
// "Reply-To" addresses. The name may be empty.
func (e *Email) AddReplyToFormat(name, addr string) error {
	return e.addAddrFormat("AddReplyToFormat", &e.replyTo, name, addr)
}

// SetReplyTo replaces the "Reply-To" addresses with the given addresses
func (e *Email) SetReplyTo(addrs ...string) error {
	return e.setAddrs("SetReplyTo", &e.replyTo, addrs)
}

// ToAddresses returns a copy of the "To" recipients
func (e *Email) ToAddresses() AddressList {
	return e.to.clone()
}

// CcAddresses returns a copy of the "Cc" recipients
func (e *Email) CcAddresses() AddressList {
	return e.cc.clone()
}

// BccAddresses returns a copy of the "Bcc" recipients
func (e *Email) BccAddresses() AddressList {
	return e.bcc.clone()
}

// ReplyToAddresses returns a copy of the "Reply-To" addresses
func (e *Email) ReplyToAddresses() AddressList {
	return e.replyTo.clone()
}

// SetFrom validates the given address and sets it as sender of the Email
func (e *Email) SetFrom(addr string) (*Address, error) {
	return e.setFrom("SetFrom", "", addr)
}

// SetFromFormat validates the given address and sets it with the given display name as sender
// of the Email
func (e *Email) SetFromFormat(name, addr string) (*Address, error) {
	return e.setFrom("SetFromFormat", name, addr)
}

// FromAddress returns the sender address of the Email or nil if none is set
func (e *Email) FromAddress() *Address {
	if e.from == nil {
		return nil
	}
	f := *e.from
	return &f
}

// AddHeader adds a custom header field to the Email. An existing field of the same name is
// overwritten but keeps its position. Both name and value must not be empty.
//
// Fields generated from other settings (From, To, Cc, Bcc, Reply-To, Subject, MIME-Version and
// the Content-* fields) are rejected with ErrInvalidArgument. A "Date" or "Message-ID" field
// replaces the generated one; a Date must be a valid RFC 5322 date.
func (e *Email) AddHeader(name, value string) error {
	const op = "AddHeader"
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	if err := validateHeader(op, name, value); err != nil {
		return err
	}
	e.headers.Set(name, value)
	e.debugf(op, "set header %q", name)
	return nil
}

// SetHeaders replaces all custom header fields of the Email. The fields are added in
// lexical order of their names. Either all headers are set or none.
func (e *Email) SetHeaders(h map[string]string) error {
	const op = "SetHeaders"
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	names := lo.Keys(h)
	sort.Strings(names)
	hm := NewHeaderMap()
	for _, n := range names {
		if err := validateHeader(op, n, h[n]); err != nil {
			return err
		}
		hm.Set(n, h[n])
	}
	e.headers = hm
	return nil
}

// Header returns the value of the named custom header field
func (e *Email) Header(name string) string {
	return e.headers.Get(name)
}

// Headers returns the custom header fields of the Email in insertion order
func (e *Email) Headers() []HeaderField {
	return e.headers.Fields()
}

// SetSubject sets the subject of the Email
func (e *Email) SetSubject(s string) {
	if e.ignoreAfterBuild("SetSubject") {
		return
	}
	e.subject = s
}

// Subject returns the subject of the Email
func (e *Email) Subject() string {
	return e.subject
}

// SetCharset sets the charset used for the subject, headers and text body of the Email.
// UTF-8 is used if no charset is set.
func (e *Email) SetCharset(c Charset) {
	if e.ignoreAfterBuild("SetCharset") {
		return
	}
	e.charset = c
}

// Charset returns the configured charset of the Email. It is empty if none was set.
func (e *Email) Charset() Charset {
	return e.charset
}

// SetEncoding sets the default transfer encoding of the body
func (e *Email) SetEncoding(enc Encoding) {
	if e.ignoreAfterBuild("SetEncoding") {
		return
	}
	e.encoding = enc
}

// SetContent sets the body of the Email. A *Multipart is passed to the Message untouched.
func (e *Email) SetContent(c Content) {
	if e.ignoreAfterBuild("SetContent") {
		return
	}
	e.content = c
}

// SetContentWithType sets a single part body of the given content type, e.g.
// "text/html; charset=ISO-8859-1". A charset parameter is used as charset of the Email if
// none is set yet.
func (e *Email) SetContentWithType(body, contentType string) error {
	const op = "SetContentWithType"
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	mt, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return newError(op, ErrReasonInvalidArgument, contentType, err)
	}
	if strings.HasPrefix(mt, "multipart/") {
		return newError(op, ErrReasonInvalidArgument, contentType,
			errors.New("multipart content must be set with SetContent"))
	}
	if cs, ok := params["charset"]; ok && cs != "" && e.charset == "" {
		e.charset = Charset(cs)
	}
	e.content = NewPart(ContentType(mt), body)
	return nil
}

// SetMsg sets a text/plain body. The message must not be empty.
func (e *Email) SetMsg(msg string) error {
	const op = "SetMsg"
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	if msg == "" {
		return newError(op, ErrReasonInvalidArgument, "", errEmptyMessage)
	}
	e.content = NewPart(TypeTextPlain, msg)
	return nil
}

// Content returns the body of the Email
func (e *Email) Content() Content {
	return e.content
}

// SetSentDate sets the date of the "Date" header. A nil date resets it, so the current time at
// the moment of reading is used.
func (e *Email) SetSentDate(d *time.Time) {
	if e.ignoreAfterBuild("SetSentDate") {
		return
	}
	if d == nil {
		e.sentDate = nil
		return
	}
	sd := *d
	e.sentDate = &sd
}

// SentDate returns the explicitly set sent date, or the current time if none is set
func (e *Email) SentDate() time.Time {
	if e.sentDate != nil {
		return *e.sentDate
	}
	return e.clock()
}

// SetHostName sets the host name of the SMTP server of the mail session
func (e *Email) SetHostName(h string) {
	e.configureSession("SetHostName", func(c *sessionConfig) { c.host = h })
}

// HostName returns the host name of the mail session. It is empty if neither a host name nor a
// session is configured.
func (e *Email) HostName() string {
	return e.sessionCfg.host
}

// SetSMTPPort sets the plain/STARTTLS port of the mail session
func (e *Email) SetSMTPPort(p int) {
	e.configureSession("SetSMTPPort", func(c *sessionConfig) { c.port = p })
}

// SMTPPort returns the plain/STARTTLS port of the mail session
func (e *Email) SMTPPort() int {
	return e.sessionCfg.port
}

// SetSSLSMTPPort sets the implicit TLS port of the mail session
func (e *Email) SetSSLSMTPPort(p int) {
	e.configureSession("SetSSLSMTPPort", func(c *sessionConfig) { c.sslPort = p })
}

// SSLSMTPPort returns the implicit TLS port of the mail session
func (e *Email) SSLSMTPPort() int {
	return e.sessionCfg.sslPort
}

// SetSSLOnConnect requests an implicit TLS connection for the mail session
func (e *Email) SetSSLOnConnect(ssl bool) {
	e.configureSession("SetSSLOnConnect", func(c *sessionConfig) { c.sslOnConnect = ssl })
}

// SetStartTLSEnabled allows STARTTLS for the mail session
func (e *Email) SetStartTLSEnabled(enabled bool) {
	e.configureSession("SetStartTLSEnabled", func(c *sessionConfig) { c.startTLSEnabled = enabled })
}

// SetStartTLSRequired requires STARTTLS for the mail session. It implies SetStartTLSEnabled.
func (e *Email) SetStartTLSRequired(required bool) {
	e.configureSession("SetStartTLSRequired", func(c *sessionConfig) {
		c.startTLSRequired = required
		if required {
			c.startTLSEnabled = true
		}
	})
}

// SetSocketConnectionTimeout sets the socket connection timeout of the mail session
func (e *Email) SetSocketConnectionTimeout(t time.Duration) {
	e.configureSession("SetSocketConnectionTimeout", func(c *sessionConfig) { c.connectionTimeout = t })
}

// SocketConnectionTimeout returns the socket connection timeout of the mail session
func (e *Email) SocketConnectionTimeout() time.Duration {
	return e.sessionCfg.connectionTimeout
}

// SetSocketTimeout sets the socket I/O timeout of the mail session
func (e *Email) SetSocketTimeout(t time.Duration) {
	e.configureSession("SetSocketTimeout", func(c *sessionConfig) { c.timeout = t })
}

// SocketTimeout returns the socket I/O timeout of the mail session
func (e *Email) SocketTimeout() time.Duration {
	return e.sessionCfg.timeout
}

// SetBounceAddress validates the given address and sets it as envelope sender of the mail session
func (e *Email) SetBounceAddress(addr string) error {
	const op = "SetBounceAddress"
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	a, err := parseAddress(op, addr, "")
	if err != nil {
		return err
	}
	e.configureSession(op, func(c *sessionConfig) { c.bounceAddress = a.Address })
	return nil
}

// BounceAddress returns the envelope sender of the mail session
func (e *Email) BounceAddress() string {
	return e.sessionCfg.bounceAddress
}

// SetDebug enables or disables debug logging for the Email and its mail session
func (e *Email) SetDebug(d bool) {
	e.configureSession("SetDebug", func(c *sessionConfig) { c.debug = d })
}

// SetMailSession uses the given Session for the Email. Its settings become the session settings
// of the Email, so a later change of a single setting keeps the others.
func (e *Email) SetMailSession(s *Session) {
	if e.ignoreAfterBuild("SetMailSession") {
		return
	}
	e.useSession(s)
}

// GetMailSession returns the mail session of the Email. The Session is created on first use and
// returned again as long as no session setting changes. A host name is required.
//
// The settings of the Email are authoritative: if the fields of a returned Session were changed,
// a new Session is created from the Email settings.
func (e *Email) GetMailSession() (*Session, error) {
	if e.session != nil {
		if e.session.sessionConfig() == e.sessionCfg {
			return e.session, nil
		}
		e.debugf("GetMailSession", "mail session was modified, recreating it")
		e.session = nil
	}
	s, err := e.sessionCfg.newSession()
	if err != nil {
		return nil, err
	}
	e.session = s
	e.debugf("GetMailSession", "created mail session for %s", s.Addr())
	return s, nil
}

// MimeMessage returns the Message produced by BuildMimeMessage, or nil if the Email was not
// built yet
func (e *Email) MimeMessage() *Message {
	return e.message
}

// BuildMimeMessage validates the Email and composes its Message. It succeeds only once per
// Email; failed attempts may be retried after fixing the configuration.
//
// A host name, a sender and at least one To, Cc or Bcc recipient are required. Everything else
// is optional.
func (e *Email) BuildMimeMessage() (*Message, error) {
	const op = "BuildMimeMessage"
	if e.built {
		return nil, newError(op, ErrReasonAlreadyBuilt, "", nil)
	}

	s, err := e.GetMailSession()
	if err != nil {
		return nil, newError(op, ErrReasonMissingConfiguration, "", err)
	}

	from := e.from
	if from == nil && s.From != "" {
		if from, err = parseAddress(op, s.From, ""); err != nil {
			return nil, newError(op, ErrReasonMissingConfiguration, s.From, err)
		}
	}
	if from == nil {
		return nil, newError(op, ErrReasonMissingConfiguration, "", errNoFromAddress)
	}
	if len(e.to)+len(e.cc)+len(e.bcc) == 0 {
		return nil, newError(op, ErrReasonMissingConfiguration, "", errNoRecipients)
	}

	m := compose(e, s, from)
	e.message = m
	e.built = true
	e.debugf(op, "built message %s with %d recipient(s)", m.messageID, len(m.Recipients()))
	return m, nil
}

// IsBuilt reports whether BuildMimeMessage succeeded on the Email
func (e *Email) IsBuilt() bool {
	return e.built
}

// addAddrs validates and appends the given addresses to the given list
func (e *Email) addAddrs(op string, l *AddressList, addrs []string) error {
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	al, err := parseAddresses(op, addrs)
	if err != nil {
		return err
	}
	*l = append(*l, al...)
	e.debugf(op, "added %d address(es)", len(al))
	return nil
}

// addAddrFormat validates and appends a single named address to the given list
func (e *Email) addAddrFormat(op string, l *AddressList, name, addr string) error {
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	a, err := parseAddress(op, addr, name)
	if err != nil {
		return err
	}
	*l = append(*l, a)
	e.debugf(op, "added address %s", a)
	return nil
}

// setAddrs validates the given addresses and replaces the given list with them
func (e *Email) setAddrs(op string, l *AddressList, addrs []string) error {
	if e.built {
		return newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	al, err := parseAddresses(op, addrs)
	if err != nil {
		return err
	}
	*l = al
	e.debugf(op, "set %d address(es)", len(al))
	return nil
}

// setFrom validates and stores the sender address
func (e *Email) setFrom(op, name, addr string) (*Address, error) {
	if e.built {
		return nil, newError(op, ErrReasonAlreadyBuilt, "", nil)
	}
	a, err := parseAddress(op, addr, name)
	if err != nil {
		return nil, err
	}
	e.from = a
	return e.FromAddress(), nil
}

// configureSession applies fn to the session settings. If the settings change, the memoized
// Session is dropped and recreated on the next GetMailSession.
func (e *Email) configureSession(op string, fn func(*sessionConfig)) {
	if e.ignoreAfterBuild(op) {
		return
	}
	c := e.sessionCfg
	fn(&c)
	if c == e.sessionCfg {
		return
	}
	e.sessionCfg = c
	if e.session != nil {
		e.debugf(op, "session settings changed, dropping mail session")
		e.session = nil
	}
}

// useSession memoizes a copy of the given Session and takes over its settings
func (e *Email) useSession(s *Session) {
	if s == nil {
		e.session = nil
		return
	}
	c := *s
	e.sessionCfg = c.sessionConfig()
	e.session = nil
	if c.Host != "" {
		e.session = &c
	}
}

// ignoreAfterBuild reports whether the Email is built already and logs a warning if so
func (e *Email) ignoreAfterBuild(op string) bool {
	if !e.built {
		return false
	}
	e.logger.Warnf(log.Log{Op: op, Format: "ignored: %s", Messages: []interface{}{ErrAlreadyBuilt}})
	return true
}

// debugf logs a debug message if debug logging is enabled
func (e *Email) debugf(op, format string, args ...interface{}) {
	if !e.sessionCfg.debug {
		return
	}
	e.logger.Debugf(log.Log{Op: op, Format: format, Messages: args})
}

// reservedHeaders are written from the Email settings and cannot be set as custom headers.
// "Date" and "Message-ID" are not reserved; a custom value replaces the generated one.
var reservedHeaders = []string{
	HeaderFrom.String(), HeaderTo.String(), HeaderCc.String(), HeaderBcc.String(),
	HeaderReplyTo.String(), HeaderSubject.String(), HeaderMIMEVersion.String(),
	HeaderContentType.String(), HeaderContentTransferEnc.String(),
}

// validateHeader checks a custom header field name and value
func validateHeader(op, name, value string) error {
	if name == "" || value == "" {
		return newError(op, ErrReasonInvalidArgument, name, errEmptyHeader)
	}
	if strings.ContainsAny(name, ": \t\r\n") || strings.ContainsAny(value, "\r\n") {
		return newError(op, ErrReasonInvalidArgument, name, errMalformedHeader)
	}
	if lo.ContainsBy(reservedHeaders, func(h string) bool { return strings.EqualFold(h, name) }) {
		return newError(op, ErrReasonInvalidArgument, name, errReservedHeader)
	}
	if strings.EqualFold(name, HeaderDate.String()) {
		if _, err := mail.ParseDate(value); err != nil {
			return newError(op, ErrReasonInvalidArgument, value, errInvalidDate)
		}
	}
	return nil
}
