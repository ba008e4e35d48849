package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error with an HTTP status attached. The error middleware
// turns it into the standard response envelope.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError covers bad requests: missing message, wrong upload type,
// oversized file. Never retried.
func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

// NewUpstreamError covers completion, vector search, and extraction failures.
// Surfaced as a generic failure; the caller re-issues the request if it wants
// a retry.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError unwraps err to an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
