package xapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	bloomPrimaryKey   = "framework/blooms/primary"
	bloomSecondaryKey = "framework/blooms/secondary"
	unknownStudent    = "(unknown)"
)

// Payload is the verb-specific part of a learning event. The set of
// implementations is closed: one type per verb in Verbs.
type Payload interface {
	Verb() Verb

	verbID() string
	describe(data ContextData, catalogURL string) objectDescriptor
	result(data ContextData) Result
	parents(data ContextData) ([]ActivityRef, bool)
	validate() error
}

// objectDescriptor is the verb-dependent part of the statement object.
type objectDescriptor struct {
	Type        string
	Description string
	NameSuffix  string
	Extensions  map[string]Extension
}

// AssessmentOutcome is shared by the failed and completed payloads.
type AssessmentOutcome struct {
	PointsEarned    float64 `json:"points_earned"`
	PointsAvailable float64 `json:"points_available"`
	Feedback        string  `json:"feedback"`
	Duration        int64   `json:"duration"` // seconds spent on the assessment
}

func (o AssessmentOutcome) validate() error {
	if o.PointsEarned < 0 || o.PointsAvailable < 0 {
		return fmt.Errorf("%w: points must not be negative", ErrInvalidPayload)
	}
	if o.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidPayload)
	}
	return nil
}

func (o AssessmentOutcome) describe(data ContextData) objectDescriptor {
	return objectDescriptor{
		Type:        "activity/assessment",
		Description: "Learning objectives: " + strings.Join(data.ParentLevel.Objectives, "; "),
	}
}

func (o AssessmentOutcome) result(success bool) Result {
	return Result{
		Success: ptr(success),
		Score: &Score{
			Scaled: scaledScore(o.PointsEarned, o.PointsAvailable),
			Raw:    o.PointsEarned,
			Min:    0,
			Max:    o.PointsAvailable,
		},
		Response: ptr(o.Feedback),
		Duration: EncodeDuration(o.Duration),
	}
}

func (o AssessmentOutcome) parents(data ContextData) ([]ActivityRef, bool) {
	parents := make([]ActivityRef, 0, 1+2*len(data.Categories))
	if data.ParentLevel.Permalink != "" {
		parents = append(parents, activityRef(data.ParentLevel.Permalink))
	}
	return appendCategoryParents(parents, data.Categories), true
}

// Failed reports an assessment attempt that did not pass.
type Failed struct{ AssessmentOutcome }

func (Failed) Verb() Verb { return VerbFailed }
func (Failed) verbID() string { return "activity/assessment/failed" }

func (p Failed) describe(data ContextData, _ string) objectDescriptor {
	return p.AssessmentOutcome.describe(data)
}

func (p Failed) result(ContextData) Result { return p.AssessmentOutcome.result(false) }

// Completed reports a passed assessment.
type Completed struct{ AssessmentOutcome }

func (Completed) Verb() Verb { return VerbCompleted }
func (Completed) verbID() string { return "activity/assessment/completed" }

func (p Completed) describe(data ContextData, _ string) objectDescriptor {
	return p.AssessmentOutcome.describe(data)
}

func (p Completed) result(ContextData) Result { return p.AssessmentOutcome.result(true) }

// Answered reports a single question response inside an assessment.
type Answered struct {
	QuestionText  string `json:"question_text"`
	QuestionID    string `json:"question_id"`
	QuestionType  string `json:"question_type"`
	QuestionBloom string `json:"question_bloom"` // "<primary>-<secondary>"
	AnswerText    string `json:"answer_text"`
	IsCorrect     bool   `json:"is_correct"`
}

func (Answered) Verb() Verb { return VerbAnswered }
func (Answered) verbID() string { return "activity/assessment/answered" }
func (Answered) validate() error { return nil }

func (p Answered) describe(_ ContextData, catalogURL string) objectDescriptor {
	d := objectDescriptor{
		Type:        "activity/assessment/" + p.QuestionType,
		Description: p.QuestionText,
		NameSuffix:  ", Question " + p.QuestionID,
	}
	// Only the first two terms are used; a value without a separator carries no taxonomy.
	if terms := strings.Split(p.QuestionBloom, "-"); len(terms) > 1 {
		d.Extensions = map[string]Extension{
			catalogURL + bloomPrimaryKey:   {Name: terms[0]},
			catalogURL + bloomSecondaryKey: {Name: terms[1]},
		}
	}
	return d
}

func (p Answered) result(ContextData) Result {
	return Result{
		Success:  ptr(p.IsCorrect),
		Response: ptr(p.AnswerText),
	}
}

func (p Answered) parents(data ContextData) ([]ActivityRef, bool) {
	parents := make([]ActivityRef, 0, 1+2*len(data.Categories))
	if data.Subject != nil {
		parents = append(parents, activityRef(data.Subject.Permalink))
	}
	return appendCategoryParents(parents, data.Categories), true
}

// Rated reports a 1-5 page rating.
type Rated struct {
	Rating float64 `json:"rating"`
}

func (Rated) Verb() Verb { return VerbRated }
func (Rated) verbID() string { return "activity/course-feedback/rated" }
func (Rated) describe(ContextData, string) objectDescriptor { return objectDescriptor{} }

func (p Rated) validate() error {
	if p.Rating < 1 || p.Rating > 5 {
		return fmt.Errorf("%w: rating %v outside 1-5", ErrInvalidPayload, p.Rating)
	}
	return nil
}

func (p Rated) result(ContextData) Result {
	return Result{Score: &Score{Raw: p.Rating, Min: 1, Max: 5}}
}

func (Rated) parents(data ContextData) ([]ActivityRef, bool) {
	return appendCategoryParents(make([]ActivityRef, 0, 2*len(data.Categories)), data.Categories), true
}

// Commented reports free-text page feedback.
type Commented struct {
	CommentText string `json:"comment_text"`
}

func (Commented) Verb() Verb { return VerbCommented }
func (Commented) verbID() string { return "activity/course-feedback/commented" }
func (Commented) describe(ContextData, string) objectDescriptor { return objectDescriptor{} }
func (Commented) validate() error { return nil }
func (Commented) parents(ContextData) ([]ActivityRef, bool) { return nil, false }

func (p Commented) result(ContextData) Result {
	return Result{Response: ptr(p.CommentText)}
}

// Viewed reports a page view. It has no payload fields.
type Viewed struct{}

func (Viewed) Verb() Verb { return VerbViewed }
func (Viewed) verbID() string { return "viewed" }
func (Viewed) describe(ContextData, string) objectDescriptor { return objectDescriptor{} }
func (Viewed) validate() error { return nil }
func (Viewed) result(ContextData) Result { return Result{} }
func (Viewed) parents(ContextData) ([]ActivityRef, bool) { return nil, false }

// Rescored reports an instructor changing a student's assessment score.
type Rescored struct {
	StudentID       string  `json:"student_id"`
	OldPoints       float64 `json:"old_points"`
	NewPoints       float64 `json:"new_points"`
	PointsAvailable float64 `json:"points_available"`
}

func (Rescored) Verb() Verb { return VerbRescored }
func (Rescored) verbID() string { return "activity/assessment/rescored" }
func (Rescored) parents(ContextData) ([]ActivityRef, bool) { return nil, false }

func (Rescored) describe(ContextData, string) objectDescriptor {
	return objectDescriptor{Type: "activity/assessment"}
}

func (p Rescored) validate() error {
	if p.NewPoints < 0 || p.PointsAvailable < 0 {
		return fmt.Errorf("%w: points must not be negative", ErrInvalidPayload)
	}
	return nil
}

func (p Rescored) result(data ContextData) Result {
	email := unknownStudent
	if data.Student != nil {
		email = data.Student.Email
	}
	return Result{
		Success: ptr(true),
		Score: &Score{
			Scaled: scaledScore(p.NewPoints, p.PointsAvailable),
			Raw:    p.NewPoints,
			Min:    0,
			Max:    p.PointsAvailable,
		},
		Response: ptr("Old score for " + email + ": " + strconv.FormatFloat(p.OldPoints, 'f', -1, 64)),
	}
}

// DecodePayload decodes the raw JSON payload of an event with the given verb.
// An empty payload is accepted and yields zero-valued fields.
func DecodePayload(verb Verb, raw json.RawMessage) (Payload, error) {
	var p Payload
	switch verb {
	case VerbFailed:
		p = &Failed{}
	case VerbCompleted:
		p = &Completed{}
	case VerbAnswered:
		p = &Answered{}
	case VerbRated:
		p = &Rated{}
	case VerbCommented:
		p = &Commented{}
	case VerbViewed:
		return Viewed{}, nil
	case VerbRescored:
		p = &Rescored{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidVerb, verb)
	}

	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return deref(p), nil
}

// deref turns the decode target back into a value payload so callers can
// compare and switch on value types.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *Failed:
		return *v
	case *Completed:
		return *v
	case *Answered:
		return *v
	case *Rated:
		return *v
	case *Commented:
		return *v
	case *Rescored:
		return *v
	}
	return p
}

func scaledScore(raw, max float64) *float64 {
	scaled := 0.0
	if max > 0 {
		scaled = raw / max
	}
	return &scaled
}

func activityRef(id string) ActivityRef {
	return ActivityRef{ID: id, ObjectType: objectTypeActivity}
}

// appendCategoryParents adds every category and, right after it, its parent category.
// Duplicates are kept: downstream reports count on them.
func appendCategoryParents(parents []ActivityRef, categories []Category) []ActivityRef {
	for _, c := range categories {
		parents = append(parents, activityRef(c.Link))
		if c.ParentLink != "" {
			parents = append(parents, activityRef(c.ParentLink))
		}
	}
	return parents
}

func ptr[T any](v T) *T {
	return &v
}
