// Package shared provides constants and helpers used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/changegen/internal/errors"
)

// Exit codes for the changegen CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the command failed
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependency indicates a required repository or file is missing
	ExitMissingDependency = 4
)

// Command group IDs used for help output.
const (
	GroupRelease       = "release"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

// ExitError carries a process exit code for an error that was already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error to a process exit code. Argument errors exit with
// ExitInvalidArguments and prerequisite errors with ExitMissingDependency.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		}
	}

	return ExitFailure
}
