package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFitted indicates that a query method was invoked before Fit.
	// This is the only hard failure of the recommendation core; absent ids and
	// degenerate inputs resolve to documented fallbacks instead.
	ErrNotFitted = errors.New("model not fitted")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// PersistenceError reports a failed save or load of fitted model state.
// Stage distinguishes where it failed ("save", "load", "decode") and Missing
// separates "not yet trained" from a corrupted or incompatible artifact.
type PersistenceError struct {
	Stage   string
	Path    string
	Missing bool
	Err     error
}

// Error returns a formatted error message including the failing stage and path.
func (e *PersistenceError) Error() string {
	if e.Missing {
		return fmt.Sprintf("model %s failed: no trained model at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("model %s failed at %q: %v", e.Stage, e.Path, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *PersistenceError) Unwrap() error { return e.Err }
