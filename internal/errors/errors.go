// Package errors provides custom error types for the VeriWise analysis client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrEmptySubmission is returned when a submission carries neither text
	// nor a staged attachment. Rejected before any network call.
	ErrEmptySubmission = errors.New("nothing to submit")

	// ErrSubmissionPending is returned when a submission is attempted while
	// another is still in flight.
	ErrSubmissionPending = errors.New("a submission is already pending")

	// ErrSessionNotFound is returned when a session id does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidResponse indicates the service returned a body that could
	// not be parsed.
	ErrInvalidResponse = errors.New("invalid response format")
)

// RequestError represents a non-success HTTP status from the analysis service.
// Body holds the best-effort extracted error message from the response body.
type RequestError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("analysis request failed [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Body)
	}
	return fmt.Sprintf("analysis request failed [%d] at %s", e.StatusCode, e.Endpoint)
}

// Is allows comparison between RequestErrors regardless of payload
func (e *RequestError) Is(target error) bool {
	_, ok := target.(*RequestError)
	return ok
}

// NewRequestError creates a new RequestError
func NewRequestError(statusCode int, endpoint, body string) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// TransportError represents a network failure or an unreadable response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport error during %s", e.Op)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is allows comparison between TransportErrors regardless of cause
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// NewTransportError creates a new TransportError
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsRequestError reports whether err is (or wraps) a RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// HTTPStatus extracts the HTTP status code from an error chain, or 0.
func HTTPStatus(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
