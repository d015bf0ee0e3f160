// Package errors provides error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates malformed or out-of-range input
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeConfig indicates a malformed or incomplete tariff configuration
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNotFound indicates an unresolved tariff key
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Validation creates a validation error for a single request field.
// The message names the field, never the bound it was checked against.
func Validation(field, message string) *Error {
	return New(TypeValidation, message).WithContext("field", field)
}

// Config creates a tariff configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted tariff configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// NotFound creates a not found error for a tariff key
func NotFound(keyKind, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", keyKind, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// Field returns the request field recorded on a validation error, if any.
func Field(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Context != nil {
		if f, ok := e.Context["field"].(string); ok {
			return f
		}
	}
	return ""
}
