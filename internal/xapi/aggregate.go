package xapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aevon-lab/xapi-connect/internal/lrs"
)

const defaultAggregateVerb = "completed"

// emptyAggregateResult is what the LRS would answer for a query that matches nothing.
var emptyAggregateResult = []byte(`{"result":[]}`)

// AggregateRequest selects the statements of a group of learners.
type AggregateRequest struct {
	Emails []string

	// Verb is matched against the verb display; empty means "completed".
	Verb string

	// ProjectID becomes the _id of every projected row; nil means 0.
	ProjectID any

	// ExcludeObjectIDs, when non-empty, adds a $nin filter on the object id.
	ExcludeObjectIDs []string
}

type nin struct {
	Values []string `json:"$nin"`
}

type matchStage struct {
	Or       []map[string]string `json:"$or"`
	Verb     string              `json:"statement.verb.display.en-US"`
	Voided   bool                `json:"voided"`
	ObjectID *nin                `json:"statement.object.id,omitempty"`
}

type sortStage struct {
	Timestamp int `json:"statement.timestamp"`
}

type projectStage struct {
	ID         any    `json:"_id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Email      string `json:"email"`
	Competency string `json:"competency"`
	Score      string `json:"score"`
}

// AggregateQuery is the three-stage pipeline sent to the LRS aggregate endpoint.
type AggregateQuery struct {
	Match   matchStage
	Sort    sortStage
	Project projectStage
}

// BuildAggregateQuery builds the pipeline that lists each learner's statements for
// one verb in timestamp order. It fails with ErrEmptyQueryInput when no emails are given.
func BuildAggregateQuery(req AggregateRequest) (*AggregateQuery, error) {
	if len(req.Emails) == 0 {
		return nil, ErrEmptyQueryInput
	}

	verb := req.Verb
	if verb == "" {
		verb = defaultAggregateVerb
	}
	projectID := req.ProjectID
	if projectID == nil {
		projectID = 0
	}

	match := matchStage{
		Or:     make([]map[string]string, 0, len(req.Emails)),
		Verb:   verb,
		Voided: false,
	}
	for _, email := range req.Emails {
		match.Or = append(match.Or, map[string]string{"statement.actor.mbox": "mailto:" + email})
	}
	if len(req.ExcludeObjectIDs) > 0 {
		match.ObjectID = &nin{Values: req.ExcludeObjectIDs}
	}

	return &AggregateQuery{
		Match: match,
		Sort:  sortStage{Timestamp: 1},
		Project: projectStage{
			ID:         projectID,
			Name:       "$statement.actor.name",
			Date:       "$statement.timestamp",
			Email:      "$statement.actor.mbox",
			Competency: "$statement.object.definition.name.en-US",
			Score:      "$statement.result.score.raw",
		},
	}, nil
}

// Pipeline returns the JSON array of pipeline stages.
func (q *AggregateQuery) Pipeline() ([]byte, error) {
	stages := []any{
		map[string]matchStage{"$match": q.Match},
		map[string]sortStage{"$sort": q.Sort},
		map[string]projectStage{"$project": q.Project},
	}
	b, err := json.Marshal(stages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aggregate pipeline: %w", err)
	}
	return b, nil
}

// Params returns the query-string parameters for the aggregate GET request.
func (q *AggregateQuery) Params() (url.Values, error) {
	pipeline, err := q.Pipeline()
	if err != nil {
		return nil, err
	}
	return url.Values{"pipeline": {string(pipeline)}}, nil
}

// AggregateQuerier runs an aggregate pipeline against the LRS.
type AggregateQuerier interface {
	QueryAggregate(ctx context.Context, params url.Values, creds lrs.Credentials) ([]byte, error)
}

// Aggregate builds and runs the pipeline for req and returns the raw JSON document.
// With no emails it returns an empty result document without contacting the LRS.
func Aggregate(ctx context.Context, querier AggregateQuerier, req AggregateRequest, creds lrs.Credentials) ([]byte, error) {
	q, err := BuildAggregateQuery(req)
	if errors.Is(err, ErrEmptyQueryInput) {
		return append([]byte(nil), emptyAggregateResult...), nil
	}
	if err != nil {
		return nil, err
	}

	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return querier.QueryAggregate(ctx, params, creds)
}
