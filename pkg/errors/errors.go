// Package errors provides custom error types for the tablekit library.
// These errors enable programmatic error checking with errors.Is and
// consistent failure reporting across the reconciliation pipeline.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the tablekit library
var (
	// ErrNilArgument indicates that a required argument was nil
	ErrNilArgument = errors.New("nil argument")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrReadOnly indicates an attempt to modify a read-only column
	ErrReadOnly = errors.New("read only")

	// ErrNotFound indicates that a requested column was not found
	ErrNotFound = errors.New("not found")
)

// NilArgumentError reports which required argument was nil.
type NilArgumentError struct {
	Name string
}

// Error implements the error interface
func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument %s must not be nil", e.Name)
}

// Is implements errors.Is support
func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// NewNilArgumentError creates a new NilArgumentError
func NewNilArgumentError(name string) *NilArgumentError {
	return &NilArgumentError{Name: name}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConversionError represents a failure to coerce a value into a column type.
// Row population treats these as non-fatal: the cell is left unset and the
// rest of the row is still written.
type ConversionError struct {
	Value  interface{}
	Target string
	Err    error
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %v (%T) to %s: %v", e.Value, e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("cannot convert %v (%T) to %s", e.Value, e.Value, e.Target)
}

// Unwrap implements errors.Unwrap
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError
func NewConversionError(value interface{}, target string, err error) *ConversionError {
	return &ConversionError{Value: value, Target: target, Err: err}
}

// ReconcileError represents an error during column reconciliation
type ReconcileError struct {
	Table   string
	Column  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ReconcileError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("reconcile error for column %s in table %s: %s", e.Column, e.Table, e.Message)
	}
	return fmt.Sprintf("reconcile error in table %s: %s", e.Table, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// NewReconcileError creates a new ReconcileError
func NewReconcileError(table, column, message string, err error) *ReconcileError {
	return &ReconcileError{
		Table:   table,
		Column:  column,
		Message: message,
		Err:     err,
	}
}

// Helper functions for error checking

// IsNilArgument checks if an error is a nil argument error
func IsNilArgument(err error) bool {
	return errors.Is(err, ErrNilArgument)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsReadOnly checks if an error is a read-only violation
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConversion checks if an error is a conversion error
func IsConversion(err error) bool {
	var convErr *ConversionError
	return errors.As(err, &convErr)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapConversion wraps an error as a ConversionError
func WrapConversion(value interface{}, target string, err error) error {
	if err == nil {
		return nil
	}
	return NewConversionError(value, target, err)
}
