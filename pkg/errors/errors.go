// Package errors provides structured error types for screengod.
//
// Every failure surfaced by the layout engine, the expression parser and the
// window layer carries a machine-readable [Code], so the CLI and the HTTP API
// can react to the kind of failure without matching on message text.
//
// # Error Codes
//
// Layout engine preconditions:
//   - INVALID_UNIT: a size is not an integer, "<n>%" or "<n>px"
//   - TYPE_MISMATCH: an operation expected a node or container and got something else
//   - UNIT_CONFLICT: a child's unit differs from its siblings' unit
//   - ATTACHED_NODE_IMMUTABLE: explicit geometry set on an attached node
//   - NO_CONTAINER: geometry requested from a detached node without explicit values
//   - NOT_A_MEMBER: a node or target does not belong to the container
//   - CYCLE: a container would become its own descendant
//
// Everything else (input, window and internal failures) uses the remaining codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnitConflict, "container uses %s", unit)
//	if errors.Is(err, errors.ErrCodeUnitConflict) {
//	    // Handle conflict
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCommandFailed, origErr, "xdotool windowmove")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine errors
	ErrCodeInvalidUnit           Code = "INVALID_UNIT"
	ErrCodeTypeMismatch          Code = "TYPE_MISMATCH"
	ErrCodeUnitConflict          Code = "UNIT_CONFLICT"
	ErrCodeAttachedNodeImmutable Code = "ATTACHED_NODE_IMMUTABLE"
	ErrCodeNoContainer           Code = "NO_CONTAINER"
	ErrCodeNotAMember            Code = "NOT_A_MEMBER"
	ErrCodeCycle                 Code = "CYCLE"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeInvalidGeometry   Code = "INVALID_GEOMETRY"

	// Window layer errors
	ErrCodeWindowNotFound Code = "WINDOW_NOT_FOUND"
	ErrCodeWindowNotSet   Code = "WINDOW_NOT_SET"
	ErrCodeCommandFailed  Code = "COMMAND_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsLayout reports whether err carries one of the layout engine codes.
// These are caller precondition violations rather than environmental failures.
func IsLayout(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidUnit, ErrCodeTypeMismatch, ErrCodeUnitConflict,
		ErrCodeAttachedNodeImmutable, ErrCodeNoContainer, ErrCodeNotAMember, ErrCodeCycle:
		return true
	}
	return false
}

// As is errors.As from the standard library, re-exported so callers that
// import this package need not alias the standard one.
func As(err error, target any) bool {
	return errors.As(err, target)
}
