// Package errors provides the categorized, user-facing errors of the
// changegen CLI. Each error carries remediation steps printed below it.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError; the CLI derives exit codes from it.
type ErrorCategory int

const (
	// Argument errors come from invalid or missing arguments and flags.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or environment overrides.
	Configuration
	// Prerequisite errors mean something the command needs is missing
	// (a repository, a changelog file, an Unreleased heading).
	Prerequisite
	// Runtime errors happen while the command runs.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

// String returns the label shown in front of the message.
func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error with a category and remediation steps.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists what the user can do next, one step per entry.
	Remediation []string
	// Usage is the correct command syntax, shown for argument errors.
	Usage string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage creates an argument error that also shows the
// correct usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	e := newError(Argument, message, remediation)
	e.Usage = usage
	return e
}

// NewPrerequisiteError creates a prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return newError(Prerequisite, message, remediation)
}

// Wrap turns err into a CLIError with err's message. A nil err stays nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	return WrapWithMessage(err, category, "", remediation...)
}

// WrapWithMessage turns err into a CLIError whose message is
// "message: err". An empty message keeps err's text as is.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	text := err.Error()
	if message != "" {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	e := newError(category, text, remediation)
	e.Cause = err
	return e
}

// IsCLIError reports whether err is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
