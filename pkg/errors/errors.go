package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for the catalog client error taxonomy.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrHTTP              = errors.New("upstream http error")
	ErrNetwork           = errors.New("upstream unreachable")
	ErrServiceUnavail    = errors.New("service unavailable")
	ErrPartialSubmission = errors.New("submission partially applied")
	ErrInternal          = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
// Status is the status presented to callers of this process; Upstream is the
// status reported by the catalog API, or 0 when the API was never reached.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"-"`
	Upstream int    `json:"-"`
	Err      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error for a single-resource fetch on a missing id.
// The error also matches ErrHTTP because the catalog API reported it.
func NotFound(message string) *AppError {
	return &AppError{
		Code:     "NOT_FOUND",
		Message:  message,
		Status:   http.StatusNotFound,
		Upstream: http.StatusNotFound,
		Err:      errors.Join(ErrNotFound, ErrHTTP),
	}
}

// Validation creates an error for a local rule violation. It never carries an
// upstream status: the request did not reach the network.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrValidation,
	}
}

// Rejected creates an error for a payload the catalog API refused (400/422).
// It matches both ErrHTTP and ErrValidation.
func Rejected(upstream int, message string) *AppError {
	return &AppError{
		Code:     "VALIDATION_ERROR",
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Upstream: upstream,
		Err:      errors.Join(ErrValidation, ErrHTTP),
	}
}

// HTTP creates an error for any other non-2xx catalog API response.
func HTTP(upstream int, message string) *AppError {
	return &AppError{
		Code:     "HTTP_ERROR",
		Message:  message,
		Status:   http.StatusBadGateway,
		Upstream: upstream,
		Err:      ErrHTTP,
	}
}

// Network creates an error for a transport-level failure (timeout, DNS,
// connection refused). cause is kept for logs, message is shown to users.
func Network(message string, cause error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     errors.Join(ErrNetwork, cause),
	}
}

// ServiceUnavailable creates a 503 error. It is raised when the circuit
// breaker short-circuits calls and therefore counts as a network failure.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     errors.Join(ErrServiceUnavail, ErrNetwork),
	}
}

// PartialSubmission reports that the second step of a two-step submission
// failed after the first one was committed. The cause's message is kept.
func PartialSubmission(cause error) *AppError {
	return &AppError{
		Code:    "PARTIAL_SUBMISSION",
		Message: UserMessage(cause),
		Status:  HTTPStatus(cause),
		Err:     errors.Join(ErrPartialSubmission, cause),
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrInternal, err),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrHTTP):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the human-readable message for err. AppError messages
// are shown as-is; anything else falls back to a generic text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// Code returns the AppError code carried by err, or INTERNAL_ERROR.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}
