package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no document matches the requested id.
var ErrNotFound = errors.New("record not found")

// ValidationError reports input that cannot be stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func requireField(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}

type counter struct {
	name  string
	value int
}

func requireNonNegative(counters ...counter) error {
	for _, c := range counters {
		if c.value < 0 {
			return invalid(c.name, "must not be negative, got %d", c.value)
		}
	}
	return nil
}
