package xapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = "https://catalog.example.edu/"

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	b := NewBuilder(Settings{
		CatalogURL: testCatalog,
		Platform:   "Example Academy",
		Version:    "1.0.0",
		Authority:  Identity{Email: "lrs@example.edu", Name: "Example LRS"},
		Location:   loc,
	})
	b.nowFn = func() time.Time { return time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC) }
	return b
}

func testContext() ContextData {
	return ContextData{
		Subject: &ContentItem{ID: "42", Title: "Unit 3 Quiz", Permalink: "https://courses.example.edu/unit-3-quiz"},
		Actor:   &Identity{Email: "ada@example.edu", Name: "Ada Lovelace"},
		Categories: []Category{
			{ID: "7", Link: "https://courses.example.edu/c/algebra", ParentLink: "https://courses.example.edu/c/math"},
			{ID: "8", Link: "https://courses.example.edu/c/logic"},
		},
		ParentLevel: ParentLevel{
			Permalink:  "https://courses.example.edu/levels/beginner",
			Objectives: []string{"Solve linear equations", "Graph lines"},
		},
		Registration: "6f1c2b7e-3a4d-4c5e-9f60-7a8b9c0d1e2f",
		Instructor:   Identity{Email: "grace@example.edu", Name: "Grace Hopper"},
	}
}

func marshalMap(t *testing.T, stmt *Statement) map[string]any {
	t.Helper()
	b, err := stmt.Marshal()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestBuild_CompletedScoresAndDuration(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		ActorID:   "1",
		Verb:      VerbCompleted,
		SubjectID: "42",
		Payload: Completed{AssessmentOutcome{
			PointsEarned:    8,
			PointsAvailable: 10,
			Feedback:        "Well done",
			Duration:        125,
		}},
	}, testContext())
	require.NoError(t, err)

	require.NotNil(t, stmt.Result.Score)
	require.NotNil(t, stmt.Result.Score.Scaled)
	assert.InDelta(t, 0.8, *stmt.Result.Score.Scaled, 1e-9)
	assert.Equal(t, 8.0, stmt.Result.Score.Raw)
	assert.Equal(t, 10.0, stmt.Result.Score.Max)
	assert.Equal(t, "PT2M5S", stmt.Result.Duration)
	assert.True(t, *stmt.Result.Success)
	assert.Equal(t, "Well done", *stmt.Result.Response)

	assert.Equal(t, testCatalog+"verbs/activity/assessment/completed", stmt.Verb.ID)
	assert.Equal(t, "completed", stmt.Verb.Display["en-US"])
	assert.Equal(t, testCatalog+"activity/assessment", stmt.Object.Definition.Type)
	assert.Equal(t, "Learning objectives: Solve linear equations; Graph lines", stmt.Object.Definition.Description["en-US"])

	parents, ok := stmt.Context.Parents()
	require.True(t, ok)
	ids := make([]string, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
		assert.Equal(t, "Activity", p.ObjectType)
	}
	assert.Equal(t, []string{
		"https://courses.example.edu/levels/beginner",
		"https://courses.example.edu/c/algebra",
		"https://courses.example.edu/c/math",
		"https://courses.example.edu/c/logic",
	}, ids)
}

func TestBuild_FailedIsUnsuccessful(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		Verb:    VerbFailed,
		Payload: Failed{AssessmentOutcome{PointsEarned: 2, PointsAvailable: 10}},
	}, testContext())
	require.NoError(t, err)

	assert.False(t, *stmt.Result.Success)
	assert.InDelta(t, 0.2, *stmt.Result.Score.Scaled, 1e-9)
	assert.Equal(t, "P", stmt.Result.Duration)
}

func TestBuild_ZeroPointsAvailableScalesToZero(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		Verb:    VerbCompleted,
		Payload: Completed{AssessmentOutcome{PointsEarned: 3}},
	}, testContext())
	require.NoError(t, err)
	assert.Equal(t, 0.0, *stmt.Result.Score.Scaled)
}

func TestBuild_AnsweredBloomExtensions(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		Verb: VerbAnswered,
		Payload: Answered{
			QuestionText:  "What is 2+2?",
			QuestionID:    "17",
			QuestionType:  "multiple-choice",
			QuestionBloom: "remember-recognize",
			AnswerText:    "4",
			IsCorrect:     true,
		},
	}, testContext())
	require.NoError(t, err)

	def := stmt.Object.Definition
	assert.Equal(t, Extension{Name: "remember"}, def.Extensions[testCatalog+"framework/blooms/primary"])
	assert.Equal(t, Extension{Name: "recognize"}, def.Extensions[testCatalog+"framework/blooms/secondary"])
	assert.Equal(t, "Unit 3 Quiz, Question 17", def.Name["en-US"])
	assert.Equal(t, testCatalog+"activity/assessment/multiple-choice", def.Type)
	assert.Equal(t, "What is 2+2?", def.Description["en-US"])
	assert.Equal(t, "4", *stmt.Result.Response)
	assert.Nil(t, stmt.Result.Score)

	parents, ok := stmt.Context.Parents()
	require.True(t, ok)
	assert.Equal(t, "https://courses.example.edu/unit-3-quiz", parents[0].ID)
}

func TestBuild_AnsweredWithoutTaxonomy(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		Verb:    VerbAnswered,
		Payload: Answered{QuestionID: "1", QuestionType: "essay", QuestionBloom: "create"},
	}, testContext())
	require.NoError(t, err)

	assert.Empty(t, stmt.Object.Definition.Extensions)
	out := marshalMap(t, stmt)
	def := out["object"].(map[string]any)["definition"].(map[string]any)
	assert.Equal(t, map[string]any{}, def["extensions"])
}

func TestBuild_ViewedHasEmptyResultAndNoParents(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{Verb: VerbViewed}, testContext())
	require.NoError(t, err)

	assert.True(t, stmt.Result.IsEmpty())
	_, ok := stmt.Context.Parents()
	assert.False(t, ok)
	assert.Equal(t, testCatalog+"verbs/viewed", stmt.Verb.ID)

	out := marshalMap(t, stmt)
	assert.Equal(t, map[string]any{}, out["result"])
	assert.Equal(t, map[string]any{}, out["context"].(map[string]any)["contextActivities"])
}

func TestBuild_RatedAndCommented(t *testing.T) {
	b := newTestBuilder(t)

	rated, err := b.Build(LearningEvent{Verb: VerbRated, Payload: Rated{Rating: 4}}, testContext())
	require.NoError(t, err)
	assert.Equal(t, &Score{Raw: 4, Min: 1, Max: 5}, rated.Result.Score)
	parents, ok := rated.Context.Parents()
	require.True(t, ok)
	assert.Len(t, parents, 3)

	_, err = b.Build(LearningEvent{Verb: VerbRated, Payload: Rated{Rating: 6}}, testContext())
	require.ErrorIs(t, err, ErrInvalidPayload)

	commented, err := b.Build(LearningEvent{Verb: VerbCommented, Payload: Commented{CommentText: "Nice page"}}, testContext())
	require.NoError(t, err)
	assert.Equal(t, "Nice page", *commented.Result.Response)
	_, ok = commented.Context.Parents()
	assert.False(t, ok)
}

func TestBuild_RescoredUnknownStudent(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{
		Verb:    VerbRescored,
		Payload: Rescored{StudentID: "999", OldPoints: 4.5, NewPoints: 7, PointsAvailable: 10},
	}, testContext())
	require.NoError(t, err)

	assert.Equal(t, "Old score for (unknown): 4.5", *stmt.Result.Response)
	assert.InDelta(t, 0.7, *stmt.Result.Score.Scaled, 1e-9)

	data := testContext()
	data.Student = &Identity{Email: "bob@example.edu", Name: "Bob"}
	stmt, err = b.Build(LearningEvent{
		Verb:    VerbRescored,
		Payload: Rescored{StudentID: "5", OldPoints: 4, NewPoints: 7, PointsAvailable: 10},
	}, data)
	require.NoError(t, err)
	assert.Contains(t, *stmt.Result.Response, "bob@example.edu")
}

func TestBuild_Validation(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Build(LearningEvent{Verb: "experienced"}, testContext())
	require.ErrorIs(t, err, ErrInvalidVerb)

	_, err = b.Build(LearningEvent{Verb: VerbCompleted, Payload: Rated{Rating: 3}}, testContext())
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = b.Build(LearningEvent{Verb: VerbCompleted}, testContext())
	require.ErrorIs(t, err, ErrInvalidPayload)

	data := testContext()
	data.Subject = nil
	_, err = b.Build(LearningEvent{Verb: VerbViewed}, data)
	require.ErrorIs(t, err, ErrMissingSubject)

	data = testContext()
	data.Actor = nil
	_, err = b.Build(LearningEvent{Verb: VerbViewed}, data)
	require.ErrorIs(t, err, ErrMissingActor)
}

func TestBuild_ContextAndEnvelope(t *testing.T) {
	b := newTestBuilder(t)

	stmt, err := b.Build(LearningEvent{Verb: VerbViewed}, testContext())
	require.NoError(t, err)

	assert.Equal(t, Agent{Mbox: "mailto:ada@example.edu", Name: "Ada Lovelace", ObjectType: "Agent"}, stmt.Actor)
	assert.Equal(t, Agent{Mbox: "mailto:grace@example.edu", Name: "Grace Hopper", ObjectType: "Agent"}, stmt.Context.Instructor)
	assert.Equal(t, Agent{Mbox: "mailto:lrs@example.edu", Name: "Example LRS", ObjectType: "Agent"}, stmt.Authority)
	assert.Equal(t, "6f1c2b7e-3a4d-4c5e-9f60-7a8b9c0d1e2f", stmt.Context.Registration)
	assert.Equal(t, "original", stmt.Context.Revision)
	assert.Equal(t, "Example Academy", stmt.Context.Platform)
	assert.Equal(t, "1.0.0", stmt.Version)
	assert.Equal(t, "https://courses.example.edu/unit-3-quiz", stmt.Object.ID)
	assert.Equal(t, "Unit 3 Quiz", stmt.Object.Definition.Name["en-US"])
	assert.Equal(t, "2024-03-01T12:30:00-05:00", stmt.Timestamp)

	data := testContext()
	data.Registration = ""
	stmt, err = b.Build(LearningEvent{Verb: VerbViewed}, data)
	require.NoError(t, err)
	assert.Equal(t, NilRegistration, stmt.Context.Registration)

	data.Registration = "not-a-uuid"
	stmt, err = b.Build(LearningEvent{Verb: VerbViewed}, data)
	require.NoError(t, err)
	assert.Equal(t, NilRegistration, stmt.Context.Registration)
}

func TestBuild_EventTimestamp(t *testing.T) {
	b := newTestBuilder(t)

	ts := time.Date(2024, 7, 4, 16, 0, 0, 0, time.UTC).Unix()
	stmt, err := b.Build(LearningEvent{Verb: VerbViewed, Timestamp: ts}, testContext())
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04T12:00:00-04:00", stmt.Timestamp)
}

func TestStatement_MarshalFieldOrderAndEscaping(t *testing.T) {
	b := newTestBuilder(t)
	data := testContext()
	data.Subject.Title = "Q&A <intro>"

	stmt, err := b.Build(LearningEvent{Verb: VerbViewed}, data)
	require.NoError(t, err)

	raw, err := stmt.Marshal()
	require.NoError(t, err)
	s := string(raw)

	assert.Contains(t, s, `"Q&A <intro>"`)
	assert.Regexp(t, `^\{"actor":.*"verb":.*"object":.*"context":.*"result":\{\},"version":.*"authority":.*"timestamp":"[^"]+"\}$`, s)
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(VerbCompleted, json.RawMessage(`{"points_earned":8,"points_available":10,"feedback":"ok","duration":125}`))
	require.NoError(t, err)
	assert.Equal(t, Completed{AssessmentOutcome{PointsEarned: 8, PointsAvailable: 10, Feedback: "ok", Duration: 125}}, p)

	p, err = DecodePayload(VerbViewed, nil)
	require.NoError(t, err)
	assert.Equal(t, Viewed{}, p)

	p, err = DecodePayload(VerbRated, nil)
	require.NoError(t, err)
	assert.Equal(t, Rated{}, p)

	_, err = DecodePayload(VerbAnswered, json.RawMessage(`{"is_correct":"yes"}`))
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodePayload("skipped", nil)
	require.ErrorIs(t, err, ErrInvalidVerb)
}
