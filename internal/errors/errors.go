// Package errors provides structured error handling for the autorelease CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// InvalidInput errors are caused by trigger data or inputs the run cannot work with:
	// a non-tag ref, a non-semver tag, an unparsable filter.
	InvalidInput ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Publish errors occur when the release cannot be created.
	Publish
	// Runtime errors occur during execution for any other reason.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case InvalidInput:
		return "Invalid Input"
	case Configuration:
		return "Configuration Error"
	case Publish:
		return "Publish Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (InvalidInput, Configuration, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional).
	Usage string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through CLIError.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new invalid input error with the given message and remediation steps.
func NewInputError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    InvalidInput,
		Message:     message,
		Remediation: remediation,
	}
}

// NewInputErrorWithUsage creates a new invalid input error that includes correct usage syntax.
func NewInputErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    InvalidInput,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// IsCLIError checks if an error is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if no CLIError is found in the chain.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// IsCategory reports whether err carries a CLIError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	cliErr := AsCLIError(err)
	return cliErr != nil && cliErr.Category == category
}
