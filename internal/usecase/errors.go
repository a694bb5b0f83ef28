package usecase

import (
	"errors"
	"strings"
)

var (
	ErrNotRegistered     = errors.New("you are not registered")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidResetToken = errors.New("invalid or expired token")
	ErrEmptyCart         = errors.New("cart is empty")
)

// ValidationError carries the field-level messages collected before any
// transaction begins. Handlers render it as a 400 with no side effects.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}
