// Package services file: services/errors.go
package services

import "errors"

// ------------------- error taxonomy -------------------

// Sentinel errors shared by every service. Controllers translate these
// into HTTP status codes; the services themselves never retry.
var (
	ErrCapacityExceeded = errors.New("event is full")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStateConflict    = errors.New("operation not allowed in current status")
)

// ValidationError reports malformed or incomplete input. The message is
// safe to show to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given user-facing
// message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
