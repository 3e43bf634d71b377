package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// Exit codes for the autorelease CLI
// These codes let workflows tell bad input apart from failed publishing.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the run failed (publish or runtime error)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid arguments or trigger input
	ExitInvalidArguments = 3

	// ExitConfiguration indicates missing or invalid configuration
	ExitConfiguration = 4
)

// ExitError carries a process exit code. The error it stands for has
// already been reported when it reaches main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the exit code for err: the code of an ExitError in its
// chain, ExitSuccess for nil, ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// exitCodeFor maps an error category to an exit code.
func exitCodeFor(err error) int {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.InvalidInput:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
