package model

import "fmt"

// MissingFieldError is returned when a record or mapping lacks a field
// declared by the entity's schema. The source row should be treated as
// invalid.
type MissingFieldError struct {
	Label string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Label, e.Field)
}
