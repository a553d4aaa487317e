package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("concurrency conflict")
	ErrStorage           = errors.New("storage failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError reports an operation attempted from a status that does not
// permit it. Unwraps to ErrInvalidTransition.
type TransitionError struct {
	Operation string
	From      DocumentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed from status %s", e.Operation, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError creates a TransitionError for the given operation and
// current status.
func NewTransitionError(operation string, from DocumentStatus) *TransitionError {
	return &TransitionError{Operation: operation, From: from}
}
