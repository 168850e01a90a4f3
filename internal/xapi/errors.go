package xapi

import "errors"

var (
	// ErrInvalidVerb is returned when an event's verb is outside the closed verb set.
	ErrInvalidVerb = errors.New("invalid verb")

	// ErrMissingSubject is returned when the event's content item could not be resolved.
	ErrMissingSubject = errors.New("subject content item not found")

	// ErrMissingActor is returned when the acting user could not be resolved.
	ErrMissingActor = errors.New("actor not found")

	// ErrInvalidPayload marks a payload that does not belong to the event's verb
	// or carries out-of-range values.
	ErrInvalidPayload = errors.New("invalid verb payload")

	// ErrEmptyQueryInput is returned by the aggregate builder when no emails are given.
	ErrEmptyQueryInput = errors.New("aggregate query requires at least one email")
)
