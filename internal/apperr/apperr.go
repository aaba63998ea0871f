// Package apperr defines the error kinds the service layer surfaces to
// callers. Repository failures that match none of these kinds are treated
// as internal store failures and propagated untouched.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed client input, rejected before any
	// engine or repository call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a record that exists but belongs to a
	// different learner.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Unauthorizedf wraps ErrUnauthorized with a formatted message.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnauthorized}, args...)...)
}
