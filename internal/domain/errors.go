package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownCategory signals a category name outside the supported set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidRecord signals a record that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrCategoryMismatch signals a record stored under another category.
	ErrCategoryMismatch = errors.New("category mismatch")
)

// FieldError describes a single invalid record field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRecord.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidRecord }

// NewFieldError creates a validation error for one field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
