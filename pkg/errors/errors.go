// Package errors provides structured error types for techdd.
//
// Errors carry a machine-readable [Code] so callers can classify a failure
// without string matching. Per-package failures inside an enrichment run are
// logged with their code and never cross the task boundary; the codes exist
// so those log lines, and the few errors that do reach the CLI, say what kind
// of thing went wrong.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (ecosystem names, package names, config)
//   - FETCH_FAILED, RATE_LIMITED: outbound request failures
//   - ADAPTER_PARSE: a registry response lacked a required field
//   - VULN_QUERY: the vulnerability database could not be queried
//   - UNSUPPORTED: no adapter is registered for an ecosystem
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEcosystem, "unknown ecosystem: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidEcosystem) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeAdapterParse, cause, "npm: %s", name)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidEcosystem Code = "INVALID_ECOSYSTEM"
	ErrCodeInvalidPackage   Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidManifest  Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Remote errors
	ErrCodeFetchFailed  Code = "FETCH_FAILED"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeAdapterParse Code = "ADAPTER_PARSE"
	ErrCodeVulnQuery    Code = "VULN_QUERY"

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

// coder is implemented by error types outside this package that still
// belong to a code, such as the fetcher's terminal failure.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error, or any error with a
// Code() method, whose code matches.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
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

// RateLimitedError reports a registry that kept answering 429.
type RateLimitedError struct {
	URL      string
	Attempts int
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: %s after %d attempts", e.URL, e.Attempts)
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
