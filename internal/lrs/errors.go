package lrs

import "errors"

var (
	// ErrInvalidConfiguration is returned when the LRS URL is missing or malformed.
	ErrInvalidConfiguration = errors.New("invalid LRS configuration")

	// ErrConnectionFailure wraps socket and TLS establishment errors.
	ErrConnectionFailure = errors.New("connection failure")

	// ErrMalformedChunkEncoding is returned when a chunked body cannot be decoded.
	ErrMalformedChunkEncoding = errors.New("malformed chunk encoding")

	// ErrMalformedResponse is returned when a response has no header block or an
	// unusable body.
	ErrMalformedResponse = errors.New("malformed HTTP response")

	// ErrRejected is returned by aggregate queries answered with a non-2xx status.
	ErrRejected = errors.New("request rejected by LRS")
)
