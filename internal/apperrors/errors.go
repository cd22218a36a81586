package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard application errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("resource already exists")
	// ErrConflict is returned when a concurrent mutation of the same
	// application could not be serialized. Callers may retry.
	ErrConflict = errors.New("concurrent modification conflict")
	ErrInternal = errors.New("internal error")
	// ErrSchedulingFailed marks a reminder whose delayed job could not be
	// enqueued. The reminder itself is persisted.
	ErrSchedulingFailed = errors.New("reminder scheduling failed")
)

// AppError carries an HTTP-ish code and a human message alongside the cause.
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

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an AppError that matches ErrConflict and keeps the
// driver error in the message.
func NewConflictError(message string, cause error) *AppError {
	wrapped := ErrConflict
	if cause != nil {
		wrapped = fmt.Errorf("%w: %v", ErrConflict, cause)
	}
	return &AppError{Code: http.StatusConflict, Message: message, Err: wrapped}
}

// NewSchedulingError returns an AppError that matches ErrSchedulingFailed.
func NewSchedulingError(message string, cause error) *AppError {
	wrapped := ErrSchedulingFailed
	if cause != nil {
		wrapped = fmt.Errorf("%w: %v", ErrSchedulingFailed, cause)
	}
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: wrapped}
}

// NewInternalError returns an AppError that matches ErrInternal and keeps cause
// in the chain.
func NewInternalError(message string, cause error) *AppError {
	wrapped := ErrInternal
	if cause != nil {
		wrapped = errors.Join(ErrInternal, cause)
	}
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: wrapped}
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrSchedulingFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
