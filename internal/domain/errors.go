package domain

import (
	"errors"
	"fmt"
)

// Common errors produced by the estimation engine.
var (
	// ErrUnknownDomain indicates a domain name that does not resolve to
	// any supported application domain.
	ErrUnknownDomain = errors.New("unknown application domain")

	// ErrAboveThreshold indicates a physical error rate at or above the
	// surface code threshold, for which no code distance exists.
	ErrAboveThreshold = errors.New("physical_error_rate exceeds fault-tolerance threshold")

	// ErrDistanceCapExceeded indicates that no code distance within the
	// bounded search satisfies the target error budget.
	ErrDistanceCapExceeded = errors.New("no code distance satisfies target error budget")

	// ErrInvalidConfiguration indicates engine configuration that failed
	// validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError reports a single malformed or out-of-range input
// field. The request is rejected before any computation so the caller
// can surface the exact constraint violated.
type ValidationError struct {
	// Field is the JSON name of the offending input field.
	Field string `json:"field"`

	// Constraint describes the violated bound, e.g. "must be ≥ 1".
	Constraint string `json:"constraint"`
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Constraint)
}

// NewValidationError creates a ValidationError for the given field and
// constraint description.
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

// InfeasibleError reports that no fault-tolerant implementation exists
// for the requested parameters. It wraps either ErrAboveThreshold or
// ErrDistanceCapExceeded and carries a human-readable reason suitable
// for the engine's infeasible response shape.
type InfeasibleError struct {
	// Reason explains why no code distance exists.
	Reason string

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface for InfeasibleError.
func (e *InfeasibleError) Error() string { return e.Reason }

// Unwrap returns the underlying sentinel error.
func (e *InfeasibleError) Unwrap() error { return e.Err }

// NewInfeasibleError creates an InfeasibleError wrapping the given
// sentinel with a formatted reason.
func NewInfeasibleError(err error, format string, args ...any) *InfeasibleError {
	return &InfeasibleError{Reason: fmt.Sprintf(format, args...), Err: err}
}
