package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	ErrNotFound    = NewNotFoundError("user", "user not found")
	ErrInvalidID   = NewInvalidIDError("", nil)
	ErrDatabase    = NewDatabaseError("database error", nil)
	ErrRateLimited = errors.New("rate limit exceeded")
)

// DecodeError represents a payload that is not a JSON object of the expected shape
type DecodeError struct {
	Message string
	Err     error
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, err error) *DecodeError {
	return &DecodeError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("decode failed: %s", e.Message)
}

// Unwrap returns the wrapped error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidIDError represents an identifier that could not be parsed
type InvalidIDError struct {
	Raw string
	Err error
}

// NewInvalidIDError creates a new invalid id error
func NewInvalidIDError(raw string, err error) *InvalidIDError {
	return &InvalidIDError{
		Raw: raw,
		Err: err,
	}
}

// Error implements the error interface
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q", e.Raw)
}

// Unwrap returns the wrapped error
func (e *InvalidIDError) Unwrap() error {
	return e.Err
}

// Is reports every InvalidIDError as equal to ErrInvalidID
func (e *InvalidIDError) Is(target error) bool {
	_, ok := target.(*InvalidIDError)
	return ok
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is reports every NotFoundError as equal to ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// DatabaseError represents any failure to reach the store or run a statement.
// The wrapped cause is for logs only and never reaches the client.
type DatabaseError struct {
	Message string
	Err     error
}

// NewDatabaseError creates a new database error
func NewDatabaseError(message string, err error) *DatabaseError {
	return &DatabaseError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Is reports every DatabaseError as equal to ErrDatabase
func (e *DatabaseError) Is(target error) bool {
	_, ok := target.(*DatabaseError)
	return ok
}
