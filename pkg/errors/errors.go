// Package errors provides structured error types for LowPop.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP host
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - UNSUPPORTED_*: Requests the library does not know how to serve
//   - GENERATION_* / *_SLOT_*: Fatal generation or placement failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedTier, "unknown tier %d", tier)
//	if errors.Is(err, errors.ErrCodeUnsupportedTier) {
//	    // Handle caller bug
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Caller/config bugs
	ErrCodeUnsupportedTier Code = "UNSUPPORTED_TIER"

	// Fatal generation and placement errors
	ErrCodeGenerationExhausted   Code = "GENERATION_EXHAUSTED"
	ErrCodeInsufficientSlotSpace Code = "INSUFFICIENT_SLOT_SPACE"
	ErrCodeSlotsExhausted        Code = "SLOTS_EXHAUSTED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// ExhaustedError carries the details of a generation that ran out of attempts.
// It is returned as the Cause of a GENERATION_EXHAUSTED *Error.
type ExhaustedError struct {
	Attempts int // Draws made for the failing tile
	Index    int // Position of the failing tile in the batch
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no unique value for tile %d after %d attempts", e.Index, e.Attempts)
}

// Code returns the error code for this error type.
func (e *ExhaustedError) Code() Code {
	return ErrCodeGenerationExhausted
}

// AsExhausted extracts the ExhaustedError details from err, if present.
func AsExhausted(err error) (*ExhaustedError, bool) {
	var e *ExhaustedError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
