package profile

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a backend failure with the table and label involved.
type StorageError struct {
	Op    string
	Table string
	Label string
	Err   error
}

func (e *StorageError) Error() string {
	msg := e.Op
	if e.Table != "" {
		msg += " " + e.Table
	}
	if e.Label != "" {
		msg += fmt.Sprintf(" label %q", e.Label)
	}
	return msg + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, table, label string, err error) error {
	var existing *StorageError
	if errors.As(err, &existing) {
		return err
	}
	return &StorageError{Op: op, Table: table, Label: label, Err: err}
}
