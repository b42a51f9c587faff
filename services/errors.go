package services

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups whose target row does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed or missing input. It always surfaces to
// the caller as a client error and never follows a committed side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an object storage failure with the operation that hit it.
type StorageError struct {
	Op  string // "upload", "delete"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a database failure. During create flows it is
// surfaced only after compensation has been attempted.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
