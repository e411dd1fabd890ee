package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not access the resource (access denied).
var ErrForbidden = errors.New("access denied")

// ErrConflict indicates the operation conflicts with the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrPosting indicates a ledger write failed; the business event needs manual reconciliation.
var ErrPosting = errors.New("posting failed")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes the cause. Errors without a cause unwrap to the sentinel
// matching their code so errors.Is keeps working across layers.
func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	switch e.Code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrConflict
	}
	return ErrInternal
}

func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

func NewForbiddenError(message string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, message)
}

func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// NewPostingError wraps a persistence failure so callers can match both
// ErrPosting and the underlying cause.
func NewPostingError(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrPosting, message)
	}
	return fmt.Errorf("%w: %s: %w", ErrPosting, message, cause)
}
