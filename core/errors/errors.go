// Package errors provides standardized error types and helpers for the mpexport codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
	// ErrInvalidName indicates a model entity name that no export format accepts
	ErrInvalidName = errors.New("invalid name")
	// ErrBadIndex indicates a coefficient referencing a variable outside the model
	ErrBadIndex = errors.New("variable index out of range")
	// ErrUnboundedRow indicates a constraint with no finite bound on either side
	ErrUnboundedRow = errors.New("constraint unbounded on both sides")
)

// Entity kinds reported by NameError and IndexError.
const (
	KindVariable   = "variable"
	KindConstraint = "constraint"
)

// NameError reports a model entity whose name fails the export naming rules.
type NameError struct {
	Kind   string // Entity kind ("variable" or "constraint")
	Index  int    // Position of the entity in the model
	Name   string // The offending name
	Reason string // Which rule the name broke
	Err    error  // Underlying error, if any
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid name for %s %d: %q: %s", e.Kind, e.Index, e.Name, e.Reason)
}

func (e *NameError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidName
}

// IndexError reports a coefficient whose variable index is outside the model.
type IndexError struct {
	Constraint int // Constraint holding the coefficient
	Position   int // Position of the coefficient within the constraint
	Var        int // The out-of-range variable index
	Count      int // Number of variables in the model
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("constraint %d term %d references variable %d, model has %d",
		e.Constraint, e.Position, e.Var, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrBadIndex
}

// RowError reports a constraint that has no finite bound on either side.
type RowError struct {
	Constraint int    // Position of the constraint in the model
	Name       string // Name of the constraint, if any
}

func (e *RowError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("constraint %d (%s) has no finite bound", e.Constraint, e.Name)
	}
	return fmt.Sprintf("constraint %d has no finite bound", e.Constraint)
}

func (e *RowError) Unwrap() error {
	return ErrUnboundedRow
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "model", "entry")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "XML", "definition")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewName creates a NameError
func NewName(kind string, index int, name, reason string) *NameError {
	return &NameError{
		Kind:   kind,
		Index:  index,
		Name:   name,
		Reason: reason,
	}
}

// NewIndex creates an IndexError
func NewIndex(constraint, position, variable, count int) *IndexError {
	return &IndexError{
		Constraint: constraint,
		Position:   position,
		Var:        variable,
		Count:      count,
	}
}

// NewRow creates a RowError
func NewRow(constraint int, name string) *RowError {
	return &RowError{
		Constraint: constraint,
		Name:       name,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
