package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpInvalidVerbError    = "invalid_verb"
	HttpInvalidPayloadError = "invalid_payload"
	HttpMissingSubjectError = "missing_subject"
	HttpMissingActorError   = "missing_actor"
	HttpBatchTooLargeError  = "batch_too_large"
	HttpLRSUnavailableError = "lrs_unavailable"
	HttpUnauthorizedError   = "unauthorized"
	HttpForbiddenError      = "forbidden"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
