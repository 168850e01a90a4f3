package v1

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
)

// Event is the wire envelope of one learning event.
type Event struct {
	// ActorID identifies the learner (or instructor, for rescored) who acted.
	ActorID string `json:"actor_id"`

	// Verb is one of failed, completed, answered, rated, commented, viewed, rescored.
	Verb string `json:"verb"`

	// SubjectID is the content item the event is about.
	SubjectID string `json:"subject_id"`

	// Payload holds the verb-specific fields; viewed takes none.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Timestamp is a unix time in seconds. Omitted means "now".
	Timestamp int64 `json:"timestamp,omitempty"`

	// Credentials override the configured LRS credentials for this event.
	Credentials *Credentials `json:"credentials,omitempty"`
}

// Credentials are per-request LRS Basic auth credentials.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate ensures the envelope has all required attributes. The verb is
// checked first so an unknown verb is reported before anything else.
func (e *Event) Validate() error {
	if _, err := xapi.ParseVerb(e.Verb); err != nil {
		return err
	}
	if strings.TrimSpace(e.ActorID) == "" {
		return fmt.Errorf("actor_id is required")
	}
	if strings.TrimSpace(e.SubjectID) == "" {
		return fmt.Errorf("subject_id is required")
	}
	if e.Timestamp < 0 {
		return fmt.Errorf("timestamp must not be negative")
	}
	return nil
}

// ToLearningEvent decodes the payload and returns the domain event.
func (e *Event) ToLearningEvent() (xapi.LearningEvent, error) {
	verb, err := xapi.ParseVerb(e.Verb)
	if err != nil {
		return xapi.LearningEvent{}, err
	}
	payload, err := xapi.DecodePayload(verb, e.Payload)
	if err != nil {
		return xapi.LearningEvent{}, err
	}
	return xapi.LearningEvent{
		ActorID:   e.ActorID,
		Verb:      verb,
		SubjectID: e.SubjectID,
		Payload:   payload,
		Timestamp: e.Timestamp,
	}, nil
}

// LRSCredentials returns the per-request credentials, zero when none were sent.
func (e *Event) LRSCredentials() lrs.Credentials {
	if e.Credentials == nil {
		return lrs.Credentials{}
	}
	return lrs.Credentials{Username: e.Credentials.Username, Password: e.Credentials.Password}
}

// Result is the per-event outcome returned by the ingestion API.
type Result struct {
	Sent        bool   `json:"sent"`
	Status      string `json:"status"`
	StatusCode  int    `json:"status_code,omitempty"`
	StatementID string `json:"statement_id,omitempty"`
	ErrorType   string `json:"error_type,omitempty"`
	Message     string `json:"message,omitempty"`
}

// BatchRequest carries several events submitted together.
type BatchRequest struct {
	Events []Event `json:"events"`
}

// BatchResponse lists per-event results in request order.
type BatchResponse struct {
	Results []Result `json:"results"`
}
