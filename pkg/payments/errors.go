package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField matches every MissingFieldError via errors.Is.
	ErrMissingField = errors.New("payments: missing required field")
	// ErrInvalidField matches every InvalidFieldError via errors.Is.
	ErrInvalidField = errors.New("payments: invalid field type")
	// ErrNilCallback is returned when a handler method receives a nil callback.
	ErrNilCallback = errors.New("payments: nil callback")
)

// MissingFieldError reports a required key absent from a mapping being deserialized.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("payments: %s: missing required field %q", e.Entity, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFieldError reports a key whose value cannot be read as the expected type.
type InvalidFieldError struct {
	Entity string
	Field  string
	Want   string
	Got    any
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("payments: %s: field %q must be %s, got %T", e.Entity, e.Field, e.Want, e.Got)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}
