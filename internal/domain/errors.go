package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-specific errors wrap it through ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or out of range.
	ErrInvalidID = errors.New("invalid ID")

	ErrEmptyName          = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrNameTooLong        = fmt.Errorf("%w: name is too long", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description is too long", ErrValidation)
	ErrInvalidDuration    = fmt.Errorf("%w: duration must be positive", ErrValidation)
	ErrInvalidCategory    = fmt.Errorf("%w: category id must be positive", ErrValidation)

	// ErrInvalidClassification is returned for an unknown age classification.
	ErrInvalidClassification = fmt.Errorf("%w: invalid classification", ErrValidation)

	// ErrInvalidRole is returned for a role other than Admin or Registered.
	ErrInvalidRole = fmt.Errorf("%w: invalid role", ErrValidation)

	// ErrUnauthorized is returned when a request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the identity lacks the required role.
	ErrForbidden = errors.New("forbidden operation")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. The wrapped error
// defaults to ErrValidation so that errors.Is(err, ErrValidation) holds.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
