package xapi

import "fmt"

// Verb names one of the learning activities that can be reported to the LRS.
type Verb string

const (
	VerbFailed    Verb = "failed"
	VerbCompleted Verb = "completed"
	VerbAnswered  Verb = "answered"
	VerbRated     Verb = "rated"
	VerbCommented Verb = "commented"
	VerbViewed    Verb = "viewed"
	VerbRescored  Verb = "rescored"
)

// Verbs lists the closed verb set in its canonical order.
var Verbs = []Verb{
	VerbFailed,
	VerbCompleted,
	VerbAnswered,
	VerbRated,
	VerbCommented,
	VerbViewed,
	VerbRescored,
}

// Valid reports whether v is a member of the closed verb set.
func (v Verb) Valid() bool {
	for _, known := range Verbs {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVerb converts a raw verb name, rejecting anything outside the closed set.
func ParseVerb(s string) (Verb, error) {
	v := Verb(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVerb, s)
	}
	return v, nil
}
