// Package controllers controllers/errors.go
package controllers

import (
	"errors"
	"net/http"

	"gaittrib/services"
)

// statusForError maps the service error taxonomy onto HTTP status codes.
// Anything unrecognised is an internal error: persistence failures
// propagate unchanged and must not leak detail to the caller.
func statusForError(err error) int {
	switch {
	case services.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrStateConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns an error string safe to render. Internal failures
// get a generic message.
func userMessage(err error) string {
	if statusForError(err) == http.StatusInternalServerError {
		return "Something went wrong, please try again."
	}
	return err.Error()
}
