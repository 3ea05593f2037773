package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameExists  = errors.New("username already taken")

	// Review errors
	ErrReviewNotFound = errors.New("review not found")

	// Authorization errors
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
)

// FieldError names a single failing field and the reason it failed
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError collects per-field validation failures for a write.
// A write that fails validation is not applied at all.
type ValidationError struct {
	Fields []FieldError
}

// Add appends a failing field
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StorageError wraps an opaque failure from the storage backend. The
// operation that produced it was not applied.
type StorageError struct {
	Cause error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return "storage error: " + e.Cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *StorageError) Unwrap() error {
	return e.Cause
}
