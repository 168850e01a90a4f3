package lrs

import (
	"bytes"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Header is one request header. Headers are written in slice order.
type Header struct {
	Name  string
	Value string
}

// Request describes one HTTP/1.1 request framed by hand onto a socket.
type Request struct {
	Method string
	Host   string
	Port   int
	Path   string

	Query   url.Values
	Form    url.Values // sent url-encoded on POST when Body is nil
	Cookies map[string]string
	Headers []Header
	Body    []byte

	// TLS wraps the socket in TLS. NewRequest sets it for port 443.
	TLS     bool
	Timeout time.Duration

	// IncludeRequestHeaders and IncludeResponseHeaders prepend the request
	// framing and the response head to the text returned by Client.Request.
	IncludeRequestHeaders  bool
	IncludeResponseHeaders bool
}

// NewRequest creates a request for host:port/path, over TLS on port 443.
func NewRequest(method, host string, port int, path string) *Request {
	return &Request{
		Method: method,
		Host:   host,
		Port:   port,
		Path:   path,
		TLS:    port == 443,
	}
}

// AddHeader appends a header.
func (r *Request) AddHeader(name, value string) *Request {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
	return r
}

// Frame renders the request line, headers and body exactly as written to the wire.
func (r *Request) Frame() []byte {
	var b bytes.Buffer
	method := strings.ToUpper(r.Method)

	path := r.Path
	if path == "" {
		path = "/"
	}
	b.WriteString(method + " " + path)
	if len(r.Query) > 0 {
		b.WriteString("?" + r.Query.Encode())
	}
	b.WriteString(" HTTP/1.1\r\n")
	b.WriteString("Host: " + r.Host + "\r\n")

	for _, h := range r.Headers {
		b.WriteString(h.Name + ": " + h.Value + "\r\n")
	}
	if cookie := r.cookieHeader(); cookie != "" {
		b.WriteString("Cookie: " + cookie + "\r\n")
	}

	switch {
	case r.Body != nil:
		b.WriteString("Content-Length: " + strconv.Itoa(len(r.Body)) + "\r\n\r\n")
		b.Write(r.Body)
	case method == "POST" && len(r.Form) > 0:
		form := r.Form.Encode()
		b.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
		b.WriteString("Content-Length: " + strconv.Itoa(len(form)) + "\r\n\r\n")
		b.WriteString(form)
	default:
		b.WriteString("\r\n")
	}
	return b.Bytes()
}

func (r *Request) cookieHeader() string {
	if len(r.Cookies) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.Cookies))
	for k := range r.Cookies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(r.Cookies[k]))
	}
	return strings.Join(pairs, "; ")
}
