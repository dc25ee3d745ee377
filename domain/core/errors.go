package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors, raised at construction before any simulation runs
	ErrInvalidDesign     = errors.New("invalid design specification")
	ErrInvalidEffectSpec = errors.New("invalid effect specification")

	// Estimation errors
	ErrSingularDesign = errors.New("design matrix is rank deficient")

	// Driver errors
	ErrRepetitionFailed = errors.New("simulation repetition failed")
)

// Error constructors with context

// NewInvalidDesignError reports a bad count with the field that carried it,
// so a misconfigured study reproduces deterministically from the message.
func NewInvalidDesignError(field string, value int) error {
	return fmt.Errorf("%w: %s must be a positive integer, got %d", ErrInvalidDesign, field, value)
}

func NewInvalidEffectSpecError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidEffectSpec, reason)
}

// NewRepetitionError wraps a per-seed failure with the offending seed attached.
func NewRepetitionError(seed int64, err error) error {
	return fmt.Errorf("%w: seed %d: %w", ErrRepetitionFailed, seed, err)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDesign) ||
		errors.Is(err, ErrInvalidEffectSpec)
}

func IsSingularDesignError(err error) bool {
	return errors.Is(err, ErrSingularDesign)
}

func IsRepetitionError(err error) bool {
	return errors.Is(err, ErrRepetitionFailed)
}
