package lrs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParsedResponse is a raw HTTP response split into its parts.
type ParsedResponse struct {
	StatusLine string
	StatusCode int

	// Headers maps lowercase header names to values; repeated headers are
	// joined with commas in arrival order.
	Headers map[string]string

	// Content is the body with surrounding whitespace trimmed.
	Content string
}

type parseState int

const (
	parseStart parseState = iota
	parseHeaders
	parseBody
)

// ParseResponse splits a raw HTTP response into headers and content. Lines
// before the first header that carry no colon (the status line) are skipped,
// as are colon-less lines inside the header block. It fails with
// ErrMalformedResponse when no blank line ends a header block.
func ParseResponse(raw string) (*ParsedResponse, error) {
	resp := &ParsedResponse{Headers: make(map[string]string)}
	var body strings.Builder
	state := parseStart

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch state {
		case parseStart, parseHeaders:
			if state == parseHeaders && strings.TrimSpace(line) == "" {
				state = parseBody
				continue
			}
			name, value, ok := strings.Cut(strings.TrimSpace(line), ":")
			if !ok {
				if state == parseStart && resp.StatusLine == "" {
					resp.StatusLine = strings.TrimSpace(line)
				}
				continue
			}
			addHeader(resp.Headers, name, value)
			state = parseHeaders

		case parseBody:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}

	if state != parseBody {
		return nil, fmt.Errorf("%w: no header block terminator", ErrMalformedResponse)
	}

	resp.StatusCode = statusCode(resp.StatusLine)
	resp.Content = strings.TrimSpace(body.String())
	return resp, nil
}

// statusCode extracts the code from a status line such as "HTTP/1.1 200 OK".
// It returns 0 when the line is not a status line.
func statusCode(line string) int {
	if !strings.HasPrefix(line, "HTTP/") {
		return 0
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// StatementID extracts the LRS-assigned statement id from a raw submission
// response. The body is a JSON array of ids; the last one is returned.
func StatementID(raw string) (uuid.UUID, error) {
	parsed, err := ParseResponse(raw)
	if err != nil {
		return uuid.Nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(parsed.Content), &ids); err != nil {
		return uuid.Nil, fmt.Errorf("%w: statement id body: %v", ErrMalformedResponse, err)
	}
	if len(ids) == 0 {
		return uuid.Nil, fmt.Errorf("%w: empty statement id list", ErrMalformedResponse)
	}

	id, err := uuid.Parse(ids[len(ids)-1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return id, nil
}
