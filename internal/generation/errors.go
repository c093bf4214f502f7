package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when tweet generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate tweet")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransport is returned for connection or timeout failures reaching the LLM API
	ErrTransport = errors.New("transport failure calling language model")

	// ErrRateLimited is returned when the local rate limiter rejects a request
	ErrRateLimited = errors.New("request rejected by rate limiter")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// StatusError is an HTTP-status-equivalent failure from the LLM API.
// 5xx codes and 429 are transient; other 4xx codes are client errors
// that no amount of retrying will fix.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// Retryable reports whether the status indicates a transient failure.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 || e.Code == 429
}

// ParseErrorKind distinguishes response validation failures in diagnostics.
type ParseErrorKind string

// Response validation failure kinds.
const (
	ParseNoJSONFound       ParseErrorKind = "no_json_found"
	ParseMalformedJSON     ParseErrorKind = "malformed_json"
	ParseSchemaViolation   ParseErrorKind = "schema_violation"
	ParseWordCountMismatch ParseErrorKind = "word_count_mismatch"
)

// ParseError is a response validation failure. All kinds report as a single
// category to callers (errors.Is(err, ErrInvalidResponse) holds) while Kind
// stays distinguishable for diagnostics.
type ParseError struct {
	Kind ParseErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrInvalidResponse, e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrInvalidResponse, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match the ErrInvalidResponse category.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// TransportRetryable classifies a gateway failure: 5xx-equivalent and 429
// statuses, connection/timeout failures, and local rate-limit rejections are
// transient; everything else aborts the transport retry sequence.
func TransportRetryable(err error) bool {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Retryable()
	}

	return errors.Is(err, ErrTransport) || errors.Is(err, ErrRateLimited)
}
