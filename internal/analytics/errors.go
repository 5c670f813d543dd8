package analytics

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks upstream data-integrity violations.
// Callers match it with errors.Is; details are on *InvalidInputError.
var ErrInvalidInput = errors.New("invalid analytics input")

// InvalidInputError describes the offending record and field
type InvalidInputError struct {
	Entity string // "position" or "execution"
	ID     string
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %s: field %s=%q: %s", e.Entity, e.ID, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s %s: field %s: %s", e.Entity, e.ID, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
