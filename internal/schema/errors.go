package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of field failures. Match them with errors.Is.
var (
	ErrRequiredField = errors.New("required field")
	ErrInvalidEnum   = errors.New("invalid enum value")
	ErrInvalidValue  = errors.New("invalid value")
)

// FieldError is a single failed rule on one input field
type FieldError struct {
	Field   string // JSON field name, e.g. "categoryId"
	Kind    error
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the failure kind.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

// ValidationError collects the field errors of one rejected input
type ValidationError struct {
	Entity string // "task" or "category"
	Fields []*FieldError
}

// NewValidationError builds a ValidationError from the given field errors
func NewValidationError(entity string, fields ...*FieldError) *ValidationError {
	return &ValidationError{Entity: entity, Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Unwrap exposes every field error so errors.Is matches on any kind.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f
	}
	return out
}

// Field returns the error for the named field, or nil
func (e *ValidationError) Field(name string) *FieldError {
	for _, f := range e.Fields {
		if f.Field == name {
			return f
		}
	}
	return nil
}

// FieldMessages maps field names to messages, for forms
func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}
