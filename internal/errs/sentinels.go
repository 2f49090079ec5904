// Package errs contains the uniform API error shape and sentinels shared across layers.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels.
var (
	// ErrNotAdmin indicates a token that does not grant admin access.
	ErrNotAdmin = errors.New("not an admin token")
)

// APIError is the single error shape every backend interaction collapses to.
// Status mirrors the HTTP status when one is known; zero means the request
// never produced a response (transport or decode failure). Message is always
// human-readable and never empty.
type APIError struct {
	Status  int
	Message string
	cause   error
}

// New creates an APIError without an underlying cause.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// Wrap creates an APIError that keeps the underlying cause for errors.Is/As chains.
func Wrap(status int, message string, cause error) *APIError {
	return &APIError{Status: status, Message: message, cause: cause}
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap exposes the transport/decode cause, if any.
func (e *APIError) Unwrap() error { return e.cause }

// StatusOf extracts the HTTP status from err if it carries an APIError.
func StatusOf(err error) (int, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status, true
	}
	return 0, false
}
