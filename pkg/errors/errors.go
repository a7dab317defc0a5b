// Package errors provides structured error types for skyline.
//
// Every failure that reaches a user carries a machine-readable [Code] so the
// CLI and the HTTP service can report it consistently:
//
//   - MALFORMED_DESCRIPTOR, NON_POSITIVE_WIDTH, NEGATIVE_HEIGHT, EMPTY_PATTERN:
//     a street descriptor or scene file that cannot be turned into elements
//   - INVALID_*: other input validation failures (formats, paths, config)
//   - *_NOT_FOUND: missing files or resources
//   - NETWORK_ERROR, INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyPattern, "token %d (%q): empty pattern", i, tok)
//	if errors.Is(err, errors.ErrCodeEmptyPattern) {
//	    // Handle the bad lot
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Descriptor errors
	ErrCodeMalformedDescriptor Code = "MALFORMED_DESCRIPTOR"
	ErrCodeNonPositiveWidth    Code = "NON_POSITIVE_WIDTH"
	ErrCodeNegativeHeight      Code = "NEGATIVE_HEIGHT"
	ErrCodeEmptyPattern        Code = "EMPTY_PATTERN"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// GetCodeOr is GetCode with a fallback for errors that carry no code.
func GetCodeOr(err error, fallback Code) Code {
	if code := GetCode(err); code != "" {
		return code
	}
	return fallback
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

// IsInput reports whether err was caused by bad user input, as opposed to
// an environmental or internal failure.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedDescriptor, ErrCodeNonPositiveWidth, ErrCodeNegativeHeight,
		ErrCodeEmptyPattern, ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return true
	}
	return false
}

// HTTPStatus maps an error to the status code the render service answers with.
func HTTPStatus(err error) int {
	if IsInput(err) {
		return http.StatusBadRequest
	}
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
