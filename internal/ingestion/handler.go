package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/xapi-connect/internal/api/v1"
	httperr "github.com/aevon-lab/xapi-connect/internal/core/errors"
	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/metrics"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body"
	msgResolveFailed    = "Failed to resolve statement context"
	msgLRSUnavailable   = "LRS unreachable"
	msgRejected         = "LRS rejected the statement"
	msgMissingStatement = "Batch contains no events"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/statements: one event, resolved, built and sent.
func (s *Service) IngestHandler(c *gin.Context) {
	var evt v1.Event
	payloadSize, ierr := s.bindBody(c, &evt)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Info("Received Event",
		"actor_id", evt.ActorID,
		"verb", evt.Verb,
		"subject_id", evt.SubjectID,
		"payload_size", payloadSize)

	result, ierr := s.process(c.Request.Context(), &evt)
	if ierr != nil {
		writeError(c, ierr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BatchHandler handles POST /v1/statements/batch. Events are submitted in
// parallel and every event gets a result, in request order.
func (s *Service) BatchHandler(c *gin.Context) {
	var batch v1.BatchRequest
	if _, ierr := s.bindBody(c, &batch); ierr != nil {
		writeError(c, ierr)
		return
	}

	if len(batch.Events) == 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgMissingStatement,
		})
		return
	}
	if len(batch.Events) > s.maxBatchSize {
		slog.Warn("Batch exceeds maximum size", "size", len(batch.Events), "max", s.maxBatchSize)
		writeError(c, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpBatchTooLargeError,
			message:    fmt.Sprintf("Batch holds %d events, the limit is %d", len(batch.Events), s.maxBatchSize),
			details:    map[string]interface{}{"max_batch_size": s.maxBatchSize},
		})
		return
	}

	results := make([]v1.Result, len(batch.Events))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(s.batchWorkers)
	for i := range batch.Events {
		i := i
		g.Go(func() error {
			res, ierr := s.process(ctx, &batch.Events[i])
			if ierr != nil {
				res = v1.Result{
					Status:     "failed",
					StatusCode: ierr.statusCode,
					ErrorType:  ierr.errorType,
					Message:    ierr.message,
				}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("Batch processed", "events", len(batch.Events))
	c.JSON(http.StatusOK, v1.BatchResponse{Results: results})
}

// bindBody reads the request body up to the configured limit and decodes it into dst.
func (s *Service) bindBody(c *gin.Context, dst interface{}) (int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return len(bodyBytes), nil
}

// process validates, resolves, builds and sends one event. The verb is checked
// before any directory lookup, so an unknown verb costs nothing.
func (s *Service) process(ctx context.Context, evt *v1.Event) (v1.Result, *ingestionError) {
	if err := evt.Validate(); err != nil {
		s.metrics.RecordStatement(evt.Verb, metrics.OutcomeInvalid)
		slog.Warn("Envelope validation failed", "error", err, "verb", evt.Verb)
		return v1.Result{}, buildError(err)
	}

	learningEvent, err := evt.ToLearningEvent()
	if err != nil {
		s.metrics.RecordStatement(evt.Verb, metrics.OutcomeInvalid)
		slog.Warn("Payload decoding failed", "error", err, "verb", evt.Verb)
		return v1.Result{}, buildError(err)
	}

	data, err := s.resolver.Resolve(ctx, learningEvent)
	if err != nil {
		s.metrics.RecordStatement(evt.Verb, metrics.OutcomeError)
		slog.Error("Failed to resolve statement context", "error", err, "subject_id", evt.SubjectID)
		return v1.Result{}, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgResolveFailed,
		}
	}

	res, err := s.reporter.Submit(ctx, learningEvent, data, evt.LRSCredentials())
	if err != nil {
		s.metrics.RecordStatement(evt.Verb, metrics.OutcomeInvalid)
		return v1.Result{}, buildError(err)
	}
	s.metrics.RecordStatement(evt.Verb, res.Status.String())

	switch res.Status {
	case lrs.StatusTransportError:
		return v1.Result{}, &ingestionError{
			statusCode: http.StatusBadGateway,
			errorType:  httperr.HttpLRSUnavailableError,
			message:    msgLRSUnavailable,
			details:    res.String(),
		}
	case lrs.StatusRejected:
		return v1.Result{
			Sent:       true,
			Status:     res.Status.String(),
			StatusCode: res.StatusCode,
			Message:    msgRejected,
		}, nil
	}

	result := v1.Result{Sent: true, Status: res.Status.String(), StatusCode: res.StatusCode}
	if id, err := lrs.StatementID(res.Raw); err == nil {
		result.StatementID = id.String()
	} else {
		slog.Debug("LRS response carried no statement id", "error", err)
	}
	return result, nil
}

// buildError maps validation and build failures to HTTP errors.
func buildError(err error) *ingestionError {
	ierr := &ingestionError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidJsonError,
		message:    err.Error(),
	}

	switch {
	case errors.Is(err, xapi.ErrInvalidVerb):
		ierr.errorType = httperr.HttpInvalidVerbError
	case errors.Is(err, xapi.ErrInvalidPayload):
		ierr.errorType = httperr.HttpInvalidPayloadError
	case errors.Is(err, xapi.ErrMissingSubject):
		ierr.statusCode = http.StatusNotFound
		ierr.errorType = httperr.HttpMissingSubjectError
	case errors.Is(err, xapi.ErrMissingActor):
		ierr.statusCode = http.StatusUnprocessableEntity
		ierr.errorType = httperr.HttpMissingActorError
	}
	return ierr
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
