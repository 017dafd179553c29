// Package errors provides structured error handling for netrecon operations.
// It defines error codes for every failure mode of the scan pipeline so the
// CLI can map failures to exit codes and messages without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeConfiguration ErrorCode = "CONFIGURATION"

	// Input errors.
	CodeInvalidProfile ErrorCode = "INVALID_PROFILE"
	CodeTargetInvalid  ErrorCode = "TARGET_INVALID"

	// External tool errors.
	CodeToolNotFound ErrorCode = "TOOL_NOT_FOUND"
	CodeToolTimeout  ErrorCode = "TOOL_TIMEOUT"
	CodeToolExit     ErrorCode = "TOOL_EXIT"

	// Report errors.
	CodeReportWrite ErrorCode = "REPORT_WRITE"
)

// ScanError represents an error that occurred during a scan invocation.
type ScanError struct {
	Code    ErrorCode
	Message string
	Target  string
	Cause   error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// New creates a new scan error with the specified code and message.
func New(code ErrorCode, message string) *ScanError {
	return &ScanError{Code: code, Message: message}
}

// NewWithTarget creates a scan error for a specific target.
func NewWithTarget(code ErrorCode, message, target string) *ScanError {
	return &ScanError{Code: code, Message: message, Target: target}
}

// Wrap wraps an existing error as a scan error.
func Wrap(code ErrorCode, message string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Cause: err}
}

// WrapWithTarget wraps an error with target information.
func WrapWithTarget(code ErrorCode, message, target string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Target: target, Cause: err}
}

// CodeOf returns the error code of err, or CodeUnknown when err is not
// a *ScanError anywhere in its chain.
func CodeOf(err error) ErrorCode {
	var se *ScanError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
