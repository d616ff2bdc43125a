package database

import (
	"errors"
	"fmt"
)

// StoreUnavailableError indicates the backing store client could not be
// constructed or reached. Every repository operation returns this instead
// of panicking when the service started without a usable connection.
type StoreUnavailableError struct {
	Err error
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store unavailable: %v", e.Err)
	}
	return "store unavailable"
}

// Unwrap returns the underlying error
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// DBError represents a failed database operation with context. Inserts and
// updates that are rejected by the store surface as a DBError.
type DBError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *DBError) Error() string {
	return fmt.Sprintf("database error in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *DBError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a referenced entity that does not exist, e.g.
// closing a nonexistent trade.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError represents an operation that violates the current state of
// an entity, e.g. closing a trade that is already CLOSED.
type ConflictError struct {
	Resource string
	ID       interface{}
	Reason   string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Resource, e.ID, e.Reason)
}

// ValidationError represents a rejected input value, e.g. a zero entry
// price at close time which would make the PnL percentage undefined.
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Reason)
}

// WrapDBError wraps a database error with operation context
func WrapDBError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &DBError{Operation: operation, Err: err}
}

// NewNotFoundError creates a NotFoundError with an ID
func NewNotFoundError(resource string, id interface{}) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewConflictError creates a ConflictError
func NewConflictError(resource string, id interface{}, reason string) error {
	return &ConflictError{Resource: resource, ID: id, Reason: reason}
}

// NewValidationError creates a ValidationError with the offending value
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}

// ErrStoreUnavailable returns the failure every operation degrades to when
// the service is running without a store connection.
func ErrStoreUnavailable() error {
	return &StoreUnavailableError{}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsStoreUnavailable reports whether err is a StoreUnavailableError
func IsStoreUnavailable(err error) bool {
	var su *StoreUnavailableError
	return errors.As(err, &su)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
