package xapi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/xapi-connect/internal/lrs"
)

// StatementSender delivers a serialized statement to the LRS.
type StatementSender interface {
	SendStatement(ctx context.Context, body []byte, creds lrs.Credentials) lrs.Result
}

// Reporter builds statements and hands them to the LRS transport.
type Reporter struct {
	builder *Builder
	sender  StatementSender
}

// NewReporter wires a builder to a transport.
func NewReporter(builder *Builder, sender StatementSender) *Reporter {
	if builder == nil {
		panic("xapi: builder must not be nil")
	}
	if sender == nil {
		panic("xapi: sender must not be nil")
	}
	return &Reporter{builder: builder, sender: sender}
}

// Submit builds the statement for evt and sends it. Build failures are returned
// as errors and never reach the network; transport outcomes are in the Result.
func (r *Reporter) Submit(ctx context.Context, evt LearningEvent, data ContextData, creds lrs.Credentials) (lrs.Result, error) {
	stmt, err := r.builder.Build(evt, data)
	if err != nil {
		return lrs.Result{}, err
	}

	body, err := stmt.Marshal()
	if err != nil {
		return lrs.Result{}, fmt.Errorf("failed to marshal statement: %w", err)
	}

	res := r.sender.SendStatement(ctx, body, creds)
	switch res.Status {
	case lrs.StatusAccepted:
		slog.Info("Statement accepted",
			"verb", evt.Verb,
			"actor_id", evt.ActorID,
			"subject_id", evt.SubjectID,
			"status_code", res.StatusCode)
	case lrs.StatusRejected:
		slog.Warn("LRS rejected the submitted statement",
			"verb", evt.Verb,
			"status_code", res.StatusCode,
			"statement", string(body),
			"response", res.Raw)
	default:
		slog.Error("Statement not delivered",
			"verb", evt.Verb,
			"error", res.Err)
	}
	return res, nil
}

// BuildAndSend reports evt and returns true when the statement reached the LRS.
// Every failure, including an unknown verb or a missing subject, yields false.
func (r *Reporter) BuildAndSend(ctx context.Context, evt LearningEvent, data ContextData, creds lrs.Credentials) bool {
	res, err := r.Submit(ctx, evt, data, creds)
	if err != nil {
		slog.Warn("Statement build failed", "verb", evt.Verb, "error", err)
		return false
	}
	return res.Delivered()
}
