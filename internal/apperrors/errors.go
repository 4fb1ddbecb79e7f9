package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnbalanced indicates that the debit and credit sides of a journal
// entry do not match. It is a validation error and is rejected before
// anything is persisted.
var ErrUnbalanced = fmt.Errorf("%w: journal entry debits and credits do not balance", ErrValidation)

// ErrInvalidState indicates a state-machine transition that is not allowed
// from the entry's current status (e.g. posting an already posted entry).
var ErrInvalidState = errors.New("invalid state transition")

// ErrMissingConfig indicates that the tenant's accounting settings are
// absent or incomplete (missing account mappings for auto-generation).
var ErrMissingConfig = errors.New("accounting configuration missing")

// ErrNoTenantContext indicates that no tenant could be resolved for the
// current request.
var ErrNoTenantContext = errors.New("no tenant in context")

// AppError wraps a lower-level failure (typically storage) with an HTTP-ish
// code and a stable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
