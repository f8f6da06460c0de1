// Package apperror defines the application's error taxonomy.
//
// Every failure in the service is classified as one of four kinds:
// validation (the caller sent something malformed), not-found (a
// referenced user does not exist), conflict (a uniqueness constraint
// was violated), or storage (anything else the database did to us).
// The HTTP layer maps these kinds to status codes with a single
// errors.Is switch — no layer below the handlers knows about HTTP.
package apperror

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// AppError carries a classified error kind plus the human-readable
// message returned to the client. Unwrap exposes the sentinel so
// callers can classify with errors.Is without parsing messages.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // returned verbatim in the error response body
	Field   string // optional: the input field that failed validation
	TraceID string // set for storage errors, for log correlation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports malformed or missing input.
// HTTP handlers map this to 400 Bad Request.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound reports that a referenced entity does not exist.
// HTTP handlers map this to 404 Not Found.
func NotFound(resource string, key any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, key),
	}
}

// Conflict reports a uniqueness violation.
// HTTP handlers map this to 409 Conflict.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Storage wraps an unclassified storage fault with a generated trace
// id. The id appears in the client-facing message AND in the
// server-side log line, so an operator can correlate a user report
// with the full error. The underlying error never reaches the client
// — it may contain SQL fragments or file paths.
func Storage(err error) *AppError {
	traceID := xid.New().String()
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStorage, err),
		Message: fmt.Sprintf("Unexpected error. TraceID: %s", traceID),
		TraceID: traceID,
	}
}
