package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("user with this email or username already exists")
	ErrUnauthorized       = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrIntegrityViolation = errors.New("integrity violation")
)

var (
	ErrInvalidToken     = errors.New("invalid refresh token")
	ErrTokenRevoked     = errors.New("refresh token revoked or expired")
	ErrTokenMismatch    = errors.New("refresh token mismatch")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrTokenIDTaken     = errors.New("refresh token id already exists")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Forbidden wraps cause so it matches both ErrForbidden and cause.
func Forbidden(cause error) error {
	return fmt.Errorf("%w: %w", ErrForbidden, cause)
}
