package lrs

import (
	"fmt"
	"strings"
)

// Status classifies the outcome of a statement submission.
type Status int

const (
	// StatusTransportError means the request never completed: bad URL, dial,
	// TLS or write failure.
	StatusTransportError Status = iota
	// StatusAccepted means the LRS answered 2xx.
	StatusAccepted
	// StatusRejected means the LRS answered with any other status.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "transport_error"
	}
}

// Credentials authenticate against the LRS with HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// IsZero reports whether no credentials were given.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Result is the typed outcome of a statement submission.
type Result struct {
	Status     Status
	StatusCode int

	// Raw is the full response as read from the socket, possibly partial.
	Raw string
	Err error
}

// OK reports whether the LRS accepted the statement.
func (r Result) OK() bool {
	return r.Status == StatusAccepted
}

// Delivered reports whether the statement reached the LRS, whatever its answer.
func (r Result) Delivered() bool {
	return r.Status == StatusAccepted || r.Status == StatusRejected
}

// String returns the raw response, or an "Error ..." line for transport errors.
func (r Result) String() string {
	if r.Status == StatusTransportError {
		return errorText(r.Err)
	}
	return r.Raw
}

func transportError(err error) Result {
	return Result{Status: StatusTransportError, Err: err}
}

func classify(code int) Status {
	if code >= 200 && code < 300 {
		return StatusAccepted
	}
	return StatusRejected
}

// errorText renders err the way callers that inspect response text expect it.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error %d: %s\n", errno(err), strings.TrimSpace(err.Error()))
}
