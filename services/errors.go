package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ValidationError marks caller-correctable input problems; handlers map it
// to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ErrNotFound is returned when a required row does not exist.
var ErrNotFound = errors.New("resource not found")

// ConflictError is a unique-constraint violation that survived the single
// transparent retry. Callers normally never see it.
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return e.Entity + ": concurrent creation conflict"
}

// TransientError wraps storage failures worth retrying at the caller.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient storage error: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// classifyStorageErr folds gorm errors into the service error kinds. Relies
// on the postgres driver's error translation (TranslateError) for duplicate
// key detection.
func classifyStorageErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Entity: entity}
	default:
		return &TransientError{Err: err}
	}
}
