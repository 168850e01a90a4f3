package lrs

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLRS accepts one connection, records the request and writes a canned response.
type fakeLRS struct {
	ln       net.Listener
	response string
	received chan string
}

func newFakeLRS(t *testing.T, response string) *fakeLRS {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeLRS{ln: ln, response: response, received: make(chan string, 1)}
	t.Cleanup(func() { ln.Close() })

	go f.serve()
	return f
}

func (f *fakeLRS) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	var head strings.Builder
	contentLength := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		head.WriteString(line)
		if name, value, ok := strings.Cut(line, ":"); ok && strings.EqualFold(name, "Content-Length") {
			contentLength, _ = strconv.Atoi(strings.TrimSpace(value))
		}
		if line == "\r\n" {
			break
		}
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, body); err != nil {
		return
	}

	f.received <- head.String() + string(body)
	_, _ = conn.Write([]byte(f.response))
}

func (f *fakeLRS) baseURL() string {
	return "http://" + f.ln.Addr().String() + "/data/xAPI/"
}

func (f *fakeLRS) request(t *testing.T) string {
	t.Helper()
	select {
	case r := <-f.received:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("fake LRS received no request")
		return ""
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Endpoint
		wantErr bool
	}{
		{
			name: "https defaults to 443 and TLS",
			raw:  "https://lrs.example.edu/data/xAPI/statements",
			want: Endpoint{Host: "lrs.example.edu", Port: 443, Path: "/data/xAPI/statements", TLS: true},
		},
		{
			name: "http defaults to 80",
			raw:  "http://lrs.local/statements",
			want: Endpoint{Host: "lrs.local", Port: 80, Path: "/statements"},
		},
		{
			name: "explicit port 443 forces TLS",
			raw:  "http://lrs.local:443/x",
			want: Endpoint{Host: "lrs.local", Port: 443, Path: "/x", TLS: true},
		},
		{
			name: "query is kept on the path",
			raw:  "http://lrs.local:8080/a?b=c",
			want: Endpoint{Host: "lrs.local", Port: 8080, Path: "/a?b=c"},
		},
		{name: "relative URL", raw: "/statements", wantErr: true},
		{name: "unsupported scheme", raw: "ftp://lrs.local/", wantErr: true},
		{name: "bad port", raw: "http://lrs.local:99999/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestRequest_Frame(t *testing.T) {
	req := NewRequest("post", "lrs.local", 80, "/login")
	req.Query = url.Values{"lang": {"en"}}
	req.Form = url.Values{"user": {"ada lovelace"}}
	req.Cookies = map[string]string{"session": "abc"}
	req.AddHeader("Accept", "application/json")

	frame := string(req.Frame())

	assert.True(t, strings.HasPrefix(frame, "POST /login?lang=en HTTP/1.1\r\nHost: lrs.local\r\n"))
	assert.Contains(t, frame, "Accept: application/json\r\n")
	assert.Contains(t, frame, "Cookie: session=abc\r\n")
	assert.Contains(t, frame, "Content-Type: application/x-www-form-urlencoded\r\n")
	assert.Contains(t, frame, "Content-Length: 17\r\n\r\nuser=ada+lovelace")
	assert.False(t, req.TLS)
	assert.True(t, NewRequest("GET", "lrs.local", 443, "/").TLS)
}

func TestClient_SendStatement(t *testing.T) {
	t.Run("accepted with basic auth and version header", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n[\"3b4c1d2e-5f6a-4b7c-8d9e-0f1a2b3c4d5e\"]")
		client, err := NewClient(Config{BaseURL: lrs.baseURL()})
		require.NoError(t, err)

		body := []byte(`{"verb":{"id":"x"}}`)
		res := client.SendStatement(context.Background(), body, Credentials{Username: "key", Password: "secret"})

		require.True(t, res.OK())
		assert.Equal(t, 200, res.StatusCode)
		assert.Contains(t, res.Raw, "3b4c1d2e")

		got := lrs.request(t)
		assert.True(t, strings.HasPrefix(got, "POST /data/xAPI/statements HTTP/1.1\r\n"))
		assert.Contains(t, got, "Content-Type: application/json\r\n")
		assert.Contains(t, got, "Authorization: Basic "+base64.StdEncoding.EncodeToString([]byte("key:secret"))+"\r\n")
		assert.Contains(t, got, "X-Experience-API-Version: 1.0.1\r\n")
		assert.Contains(t, got, "Connection: Close\r\n")
		assert.True(t, strings.HasSuffix(got, string(body)))
	})

	t.Run("no authorization header without credentials", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 204 No Content\r\n\r\n")
		client, err := NewClient(Config{BaseURL: lrs.baseURL()})
		require.NoError(t, err)

		res := client.SendStatement(context.Background(), []byte(`{}`), Credentials{})

		assert.True(t, res.OK())
		assert.NotContains(t, lrs.request(t), "Authorization:")
	})

	t.Run("configured credentials are the fallback", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 200 OK\r\n\r\n[]")
		client, err := NewClient(Config{BaseURL: lrs.baseURL(), Credentials: Credentials{Username: "k", Password: "s"}})
		require.NoError(t, err)

		client.SendStatement(context.Background(), []byte(`{}`), Credentials{})

		assert.Contains(t, lrs.request(t), "Authorization: Basic "+base64.StdEncoding.EncodeToString([]byte("k:s")))
	})

	t.Run("non-2xx is rejected but delivered", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 400 Bad Request\r\n\r\n{\"error\":true}")
		client, err := NewClient(Config{BaseURL: lrs.baseURL()})
		require.NoError(t, err)

		res := client.SendStatement(context.Background(), []byte(`{}`), Credentials{})

		assert.Equal(t, StatusRejected, res.Status)
		assert.Equal(t, 400, res.StatusCode)
		assert.True(t, res.Delivered())
		assert.False(t, res.OK())
	})

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		client, err := NewClient(Config{BaseURL: "http://" + addr + "/", StatementTimeout: time.Second})
		require.NoError(t, err)

		res := client.SendStatement(context.Background(), []byte(`{}`), Credentials{})

		assert.Equal(t, StatusTransportError, res.Status)
		assert.False(t, res.Delivered())
		require.ErrorIs(t, res.Err, ErrConnectionFailure)
		assert.True(t, strings.HasPrefix(res.String(), "Error "))
		assert.True(t, strings.HasSuffix(res.String(), "\n"))
	})
}

func TestClient_QueryAggregate(t *testing.T) {
	t.Run("decodes a chunked body", func(t *testing.T) {
		body := encodeChunked(`{"result":`, `[]}`)
		lrs := newFakeLRS(t, "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n"+string(body))
		client, err := NewClient(Config{BaseURL: lrs.baseURL(), AggregatePath: "/api/v1/statements/aggregate"})
		require.NoError(t, err)

		params := url.Values{"pipeline": {`[{"$match":{}}]`}}
		out, err := client.QueryAggregate(context.Background(), params, Credentials{Username: "k", Password: "s"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"result":[]}`, string(out))

		got := lrs.request(t)
		assert.True(t, strings.HasPrefix(got, "GET /api/v1/statements/aggregate?"+params.Encode()+" HTTP/1.1\r\n"))
		assert.Contains(t, got, "Cache-Control: no-cache\r\n")
		assert.Contains(t, got, "Connection: close\r\n")
		assert.Contains(t, got, "X-Experience-API-Version: 1.0.1\r\n")
	})

	t.Run("non-2xx wraps ErrRejected", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 401 Unauthorized\r\n\r\n")
		client, err := NewClient(Config{BaseURL: lrs.baseURL()})
		require.NoError(t, err)

		_, err = client.QueryAggregate(context.Background(), url.Values{}, Credentials{})
		require.ErrorIs(t, err, ErrRejected)
	})
}

func TestClient_Request(t *testing.T) {
	t.Run("returns the body, optionally with heads", func(t *testing.T) {
		lrs := newFakeLRS(t, "HTTP/1.1 200 OK\r\nX-Trace: 7\r\n\r\nhello")
		host, portStr, err := net.SplitHostPort(lrs.ln.Addr().String())
		require.NoError(t, err)
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		client, err := NewClient(Config{BaseURL: lrs.baseURL()})
		require.NoError(t, err)

		req := NewRequest("GET", host, port, "/ping")
		req.IncludeResponseHeaders = true
		out := client.Request(context.Background(), req)

		assert.Equal(t, "HTTP/1.1 200 OK\r\nX-Trace: 7\r\n\r\nhello", out)
	})

	t.Run("connection failures become error text", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		_, portStr, _ := net.SplitHostPort(ln.Addr().String())
		require.NoError(t, ln.Close())
		port, _ := strconv.Atoi(portStr)

		client, err := NewClient(Config{BaseURL: "http://127.0.0.1/"})
		require.NoError(t, err)

		out := client.Request(context.Background(), NewRequest("GET", "127.0.0.1", port, "/"))
		assert.Regexp(t, `^Error \d+: `, out)
	})
}

func TestParseRawResponse_Truncated(t *testing.T) {
	resp, err := parseRawResponse([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain"), true)
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.True(t, resp.Truncated)
	assert.Equal(t, 0, resp.StatusCode)
}
