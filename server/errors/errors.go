package errors

import (
	"fmt"
	"net/http"
)

// AppError is an application error carrying the HTTP status and the message
// shown to the caller. The wrapped error stays in the logs only.
type AppError struct {
	Code    int    `json:"status_code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Context string `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped error for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the error.
// Implements the middleware.HTTPError interface.
func (e *AppError) StatusCode() int {
	return e.Code
}

// UserMessage returns the caller-facing message.
// Implements the middleware.HTTPError interface.
func (e *AppError) UserMessage() string {
	return e.Message
}

// GetContext returns additional context (function, parameters).
// Implements the middleware.HTTPError interface.
func (e *AppError) GetContext() string {
	return e.Context
}

// WithContext attaches context to the error.
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a 400 Bad Request error.
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a 500 Internal Server Error.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewDatabaseError creates a 500 error for storage failures. Storage being
// unreachable is the one condition the pipeline does not degrade around.
func NewDatabaseError(operation string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Err:     err,
	}
}

// NewConflictError creates a 409 Conflict error.
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		Err:     err,
	}
}
