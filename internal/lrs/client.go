package lrs

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aevon-lab/xapi-connect/internal/metrics"
)

const (
	// APIVersionHeader carries the xAPI version on every LRS request.
	APIVersionHeader = "X-Experience-API-Version"

	defaultAPIVersion       = "1.0.1"
	defaultAggregatePath    = "/api/v1/statements/aggregate"
	defaultStatementTimeout = 30 * time.Second
	defaultRequestTimeout   = 5 * time.Second
	statementsEndpoint      = "statements"
)

var headerTerminator = []byte("\r\n\r\n")

// Config holds the LRS connection settings.
type Config struct {
	// BaseURL is the LRS xAPI root; "statements" is appended to it verbatim.
	BaseURL          string
	Credentials      Credentials
	Version          string
	AggregatePath    string
	StatementTimeout time.Duration
	RequestTimeout   time.Duration
}

// Endpoint is a parsed LRS URL.
type Endpoint struct {
	Host string
	Port int
	Path string
	TLS  bool
}

// ParseEndpoint validates an absolute http(s) URL and resolves its port.
func ParseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidConfiguration, raw)
	}

	ep := Endpoint{
		Host: u.Hostname(),
		Path: u.EscapedPath(),
		TLS:  u.Scheme == "https",
	}
	if ep.Path == "" {
		ep.Path = "/"
	}
	if u.RawQuery != "" {
		ep.Path += "?" + u.RawQuery
	}

	switch p := u.Port(); {
	case p != "":
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return Endpoint{}, fmt.Errorf("%w: invalid port %q", ErrInvalidConfiguration, p)
		}
		ep.Port = port
	case ep.TLS:
		ep.Port = 443
	default:
		ep.Port = 80
	}
	if ep.Port == 443 {
		ep.TLS = true
	}
	return ep, nil
}

// Response is a response read from the socket until end of stream.
type Response struct {
	StatusLine string
	StatusCode int
	Headers    map[string]string
	Head       []byte
	// Body is de-chunked when the response used chunked transfer encoding.
	Body []byte
	Raw  []byte

	// Truncated is set when reading stopped on a timeout or read error.
	Truncated bool
}

// Client speaks HTTP/1.1 to the LRS over plain or TLS stream sockets. It opens
// one connection per request and always closes it before returning.
type Client struct {
	cfg       Config
	base      Endpoint
	tlsConfig *tls.Config
	metrics   *metrics.Manager
}

// Option configures a Client.
type Option func(*Client)

// WithTLSConfig overrides the TLS configuration used for https endpoints.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) { c.tlsConfig = cfg }
}

// WithMetrics records request outcomes and latencies.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient validates cfg and creates a client. It fails with
// ErrInvalidConfiguration when the base URL is unusable.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := ParseEndpoint(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = defaultAPIVersion
	}
	if cfg.AggregatePath == "" {
		cfg.AggregatePath = defaultAggregatePath
	}
	if cfg.StatementTimeout <= 0 {
		cfg.StatementTimeout = defaultStatementTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	c := &Client{cfg: cfg, base: base}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do frames req onto a new connection, reads the response to end of stream and
// closes the connection. Dial, TLS and write failures wrap ErrConnectionFailure.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	resp, err := c.do(ctx, req)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		outcome = "non_2xx"
	}
	c.metrics.ObserveLRSRequest(strings.ToUpper(req.Method), outcome, time.Since(start))
	return resp, err
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.RequestTimeout
	}

	conn, err := c.dial(ctx, req, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s:%d: %w", ErrConnectionFailure, req.Host, req.Port, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("%w: set deadline: %w", ErrConnectionFailure, err)
	}

	frame := req.Frame()
	slog.Debug("[LRS] Sending request",
		"method", req.Method,
		"host", req.Host,
		"port", req.Port,
		"path", req.Path,
		"bytes", len(frame))

	if _, err := conn.Write(frame); err != nil {
		return nil, fmt.Errorf("%w: write: %w", ErrConnectionFailure, err)
	}

	raw, err := io.ReadAll(conn)
	truncated := false
	if err != nil {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: read: %w", ErrConnectionFailure, err)
		}
		truncated = true
		slog.Warn("[LRS] Response read stopped early", "host", req.Host, "bytes", len(raw), "error", err)
	}

	return parseRawResponse(raw, truncated)
}

func (c *Client) dial(ctx context.Context, req *Request, timeout time.Duration) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: timeout}
	addr := net.JoinHostPort(req.Host, strconv.Itoa(req.Port))
	if !req.TLS {
		return dialer.DialContext(ctx, "tcp", addr)
	}

	cfg := c.tlsConfig
	if cfg == nil {
		cfg = &tls.Config{}
	}
	cfg = cfg.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = req.Host
	}
	tlsDialer := &tls.Dialer{NetDialer: dialer, Config: cfg}
	return tlsDialer.DialContext(ctx, "tcp", addr)
}

// parseRawResponse splits the head at the first blank line and de-chunks the body.
func parseRawResponse(raw []byte, truncated bool) (*Response, error) {
	resp := &Response{Raw: raw, Truncated: truncated, Headers: map[string]string{}}

	sep := bytes.Index(raw, headerTerminator)
	if sep < 0 {
		return resp, fmt.Errorf("%w: no header terminator in %d bytes", ErrMalformedResponse, len(raw))
	}
	resp.Head = raw[:sep]
	body := raw[sep+len(headerTerminator):]

	lines := strings.Split(string(resp.Head), "\r\n")
	resp.StatusLine = lines[0]
	resp.StatusCode = statusCode(lines[0])
	for _, line := range lines[1:] {
		if name, value, ok := strings.Cut(line, ":"); ok {
			addHeader(resp.Headers, name, value)
		}
	}

	if isChunked(resp.Headers["transfer-encoding"]) {
		decoded, err := DecodeChunked(body)
		if err != nil {
			resp.Body = body
			return resp, err
		}
		body = decoded
	}
	resp.Body = body
	return resp, nil
}

func isChunked(transferEncoding string) bool {
	for _, coding := range strings.Split(transferEncoding, ",") {
		if strings.EqualFold(strings.TrimSpace(coding), "chunked") {
			return true
		}
	}
	return false
}

// Request performs req and returns the response body as text. Failures are
// returned as an "Error <errno>: <message>" line instead of an error value, so
// callers can inspect the text the same way for every outcome.
func (c *Client) Request(ctx context.Context, req *Request) string {
	resp, err := c.Do(ctx, req)
	if err != nil && (resp == nil || !errors.Is(err, ErrMalformedChunkEncoding)) {
		return errorText(err)
	}

	var b strings.Builder
	if req.IncludeRequestHeaders {
		b.Write(req.Frame())
	}
	if req.IncludeResponseHeaders {
		b.Write(resp.Head)
		b.Write(headerTerminator)
	}
	b.Write(resp.Body)
	return b.String()
}

// PostJSON posts a JSON document to rawURL with the xAPI version header and,
// when creds are set, Basic auth.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body []byte, creds Credentials) Result {
	ep, err := ParseEndpoint(rawURL)
	if err != nil {
		return transportError(err)
	}

	req := &Request{
		Method:  "POST",
		Host:    ep.Host,
		Port:    ep.Port,
		Path:    ep.Path,
		TLS:     ep.TLS,
		Body:    body,
		Timeout: c.cfg.StatementTimeout,
	}
	req.AddHeader("Content-Type", "application/json")
	if !creds.IsZero() {
		req.AddHeader("Authorization", basicAuth(creds))
	}
	req.AddHeader(APIVersionHeader, c.cfg.Version)
	req.AddHeader("Connection", "Close")

	resp, err := c.Do(ctx, req)
	if err != nil && resp == nil {
		return transportError(err)
	}
	if resp.StatusCode == 0 {
		// Bytes arrived but no status line could be read.
		return Result{Status: StatusRejected, Raw: string(resp.Raw), Err: err}
	}
	return Result{
		Status:     classify(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Raw:        string(resp.Raw),
		Err:        err,
	}
}

// SendStatement posts a serialized statement to <base URL>statements. Empty
// credentials fall back to the configured ones.
func (c *Client) SendStatement(ctx context.Context, body []byte, creds Credentials) Result {
	if creds.IsZero() {
		creds = c.cfg.Credentials
	}
	return c.PostJSON(ctx, c.cfg.BaseURL+statementsEndpoint, body, creds)
}

// QueryAggregate runs an aggregation pipeline against the LRS reporting API and
// returns the decoded response body.
func (c *Client) QueryAggregate(ctx context.Context, params url.Values, creds Credentials) ([]byte, error) {
	if creds.IsZero() {
		creds = c.cfg.Credentials
	}

	req := &Request{
		Method:  "GET",
		Host:    c.base.Host,
		Port:    c.base.Port,
		Path:    c.cfg.AggregatePath,
		TLS:     c.base.TLS,
		Query:   params,
		Timeout: c.cfg.RequestTimeout,
	}
	if !creds.IsZero() {
		req.AddHeader("Authorization", basicAuth(creds))
	}
	req.AddHeader("Cache-Control", "no-cache")
	req.AddHeader("Connection", "close")
	req.AddHeader("Content-Type", "application/json")
	req.AddHeader(APIVersionHeader, c.cfg.Version)

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Body, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return resp.Body, nil
}

func basicAuth(creds Credentials) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds.Username+":"+creds.Password))
}

func addHeader(headers map[string]string, name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimLeft(value, " \t")
	if existing, ok := headers[name]; ok {
		headers[name] = existing + "," + value
		return
	}
	headers[name] = value
}

// errno extracts the OS error number from a dial or socket error, 0 if none.
func errno(err error) int {
	var en syscall.Errno
	if errors.As(err, &en) {
		return int(en)
	}
	return 0
}
