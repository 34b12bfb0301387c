// Package validate provides structured input validation shared by the
// calculation engines. Malformed input is the only hard-error class in the
// core: degenerate-but-valid values (zero denominators, boundary percentages)
// are handled by each engine with documented sentinels instead.
package validate

import "fmt"

// FieldError identifies the offending input field so callers can surface the
// problem next to the matching form control.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Message)
}

// NewFieldError constructs a FieldError with a formatted message.
func NewFieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NonNegative rejects values below zero.
func NonNegative(field string, v float64) error {
	if v < 0 {
		return NewFieldError(field, "must not be negative, got %v", v)
	}
	return nil
}

// Positive rejects zero and below. Used where a value feeds a denominator.
func Positive(field string, v float64) error {
	if v <= 0 {
		return NewFieldError(field, "must be greater than zero, got %v", v)
	}
	return nil
}

// Percentage rejects values outside [0, 100].
func Percentage(field string, v float64) error {
	if v < 0 || v > 100 {
		return NewFieldError(field, "must be between 0 and 100, got %v", v)
	}
	return nil
}

// IntRange rejects integers outside [lo, hi].
func IntRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return NewFieldError(field, "must be between %d and %d, got %d", lo, hi, v)
	}
	return nil
}

// Range rejects values outside [lo, hi].
func Range(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return NewFieldError(field, "must be between %v and %v, got %v", lo, hi, v)
	}
	return nil
}
