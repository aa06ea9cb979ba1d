// Package errors provides structured error types and exit codes for rsbuild.
//
// Three failure classes reach the user:
//   - UnknownOperation: the requested operation is not one of the fixed set.
//     Reported before anything is launched.
//   - LaunchFailure: the build tool could not be located or started.
//   - ToolFailure: the build tool ran and returned a non-zero status. The
//     status is carried verbatim by ToolExit and never reinterpreted.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// Exit codes owned by rsbuild itself. Any other code is the build tool's.
const (
	ExitSuccess          = 0   // Success
	ExitRuntimeError     = 1   // Unclassified runtime error
	ExitUsageError       = 2   // Bad flags or too many arguments
	ExitUnknownOperation = 64  // Operation name outside the fixed set (EX_USAGE)
	ExitLaunchFailure    = 127 // Build tool missing or not executable
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindUsage
	KindUnknownOperation
	KindLaunch
)

// Error is the base error type for rsbuild.
type Error struct {
	Kind      ErrorKind
	Message   string
	Operation string // Operation name if applicable
	Tool      string // Build tool executable if applicable
	Cause     error  // Underlying error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindUsage:
		return ExitUsageError
	case KindUnknownOperation:
		return ExitUnknownOperation
	case KindLaunch:
		return ExitLaunchFailure
	default:
		return ExitRuntimeError
	}
}

// Usage creates a command-line usage error.
func Usage(message string) *Error {
	return &Error{
		Kind:    KindUsage,
		Message: message,
	}
}

// Usagef creates a usage error with formatting.
func Usagef(format string, args ...interface{}) *Error {
	return Usage(fmt.Sprintf(format, args...))
}

// UnknownOperation creates the error for an operation name outside valid.
func UnknownOperation(name string, valid []string) *Error {
	return &Error{
		Kind:      KindUnknownOperation,
		Operation: name,
		Message:   fmt.Sprintf("unknown operation %q (valid operations: %s)", name, strings.Join(valid, ", ")),
	}
}

// Launch creates the error for a build tool that could not be started.
// The message always names the executable.
func Launch(tool string, cause error) *Error {
	msg := fmt.Sprintf("failed to start build tool %q", tool)
	if errors.Is(cause, exec.ErrNotFound) {
		msg = fmt.Sprintf("build tool %q not found in PATH", tool)
	}
	return &Error{
		Kind:    KindLaunch,
		Tool:    tool,
		Message: msg,
		Cause:   eris.Wrapf(cause, "launch %s", tool),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// ToolExit reports that the build tool ran and exited with a non-zero status.
// Its exit code is the tool's own; the tool has already written whatever
// diagnostics it wanted, so callers should not print anything further.
type ToolExit struct {
	Tool string
	Code int
}

func (e *ToolExit) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// ExitCode returns the build tool's exit status unchanged.
func (e *ToolExit) ExitCode() int {
	return e.Code
}

// IsToolFailure returns true if err is or wraps a ToolExit.
func IsToolFailure(err error) bool {
	var te *ToolExit
	return errors.As(err, &te)
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var te *ToolExit
	if errors.As(err, &te) {
		return te.ExitCode()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}

