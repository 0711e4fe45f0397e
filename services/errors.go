package services

import (
	"errors"
	"fmt"
)

// Stable error kinds so callers can decide between retrying and
// prompting the operator.
var (
	ErrNotFound            = errors.New("ticket not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadySettled      = errors.New("ticket already settled")
	ErrNotSettled          = errors.New("ticket has not been settled")
	ErrGenerationExhausted = errors.New("could not secure a unique ticket number")
)

// ValidationError reports a rejected request field. Creation fails as a
// whole on the first invalid field; nothing is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
