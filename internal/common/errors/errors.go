// Package errors provides standardized error codes for collaborator failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Generation failures use package-level sentinels in generate-text instead;
// these codes cover the inventory service client.
const (
	ErrCodePlantDBUnreachable ErrorCode = "PLANTDB_UNREACHABLE"
	ErrCodePlantDBBadStatus   ErrorCode = "PLANTDB_BAD_STATUS"
	ErrCodePlantNotFound      ErrorCode = "PLANT_NOT_FOUND"
)

// StandardError is a structured application error carrying a stable code.
type StandardError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *StandardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Err
}

// New creates a StandardError without an underlying cause.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	return &StandardError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the error code from err, or UNKNOWN_ERROR.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return "UNKNOWN_ERROR"
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
