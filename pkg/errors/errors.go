// Package errors provides structured error types for gitdeps.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration failures
//   - NO_*: Empty results that end an operation early
//   - SYNCHRONIZER_*: Failures of the external version-control tool
//   - FILESYSTEM_*: Directory scan failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLibraryRoot, "library path is a file: %s", dir)
//	if errors.Is(err, errors.ErrCodeInvalidLibraryRoot) {
//	    // Handle invalid root
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSynchronizer, origErr, "clone %s", url)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput           Code = "INVALID_INPUT"
	ErrCodeInvalidConfig          Code = "INVALID_CONFIG"
	ErrCodeInvalidLibraryRoot     Code = "INVALID_LIBRARY_ROOT"
	ErrCodeInvalidDeclarationFile Code = "INVALID_DECLARATION_FILE"
	ErrCodeInvalidLibraryName     Code = "INVALID_LIBRARY_NAME"
	ErrCodeInvalidSourceURL       Code = "INVALID_SOURCE_URL"

	// Empty results
	ErrCodeNoDependencies Code = "NO_DEPENDENCIES"

	// External synchronizer errors
	ErrCodeSynchronizer        Code = "SYNCHRONIZER_FAILURE"
	ErrCodeSynchronizerMissing Code = "SYNCHRONIZER_MISSING"

	// Filesystem errors
	ErrCodeFilesystemEnumeration Code = "FILESYSTEM_ENUMERATION"

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

// coder is implemented by error types that carry a fixed code.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// The first *Error in the chain decides; without one, the first error with a
// Code method does.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if nothing in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// ExitCode maps err onto a process exit status: 0 for nil, 130 for a
// cancelled context, 2 for invalid input or configuration, 127 when the
// synchronizer is missing, and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig:
		return 2
	case ErrCodeSynchronizerMissing:
		return 127
	default:
		return 1
	}
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

// ExitStatusError reports a non-zero exit status from an external command.
type ExitStatusError struct {
	Command string // Command line that was executed
	Status  int    // Process exit status
	Output  string // Combined output, trimmed
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Status, e.Output)
	}
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Status)
}

// Code returns the error code for this error type.
func (e *ExitStatusError) Code() Code {
	return ErrCodeSynchronizer
}
