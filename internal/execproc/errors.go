package execproc

import (
	"errors"
	"fmt"
	"time"
)

const (
	commandNotFoundErrorTemplateConstant   = "command not found: %s: ensure the executable is installed and available on PATH"
	processTimeoutErrorTemplateConstant    = "command timed out after %s (limit %s): %s"
	processExecutionErrorTemplateConstant  = "command failed with exit code %d: %s%s"
	processLaunchErrorTemplateConstant     = "unable to launch background process %s: %s"
	standardErrorDetailTemplateConstant    = ": %s"
	unknownLaunchFailureMessageConstant    = "unknown error"
	emptyStandardErrorDetailConstant       = ""
)

// Sentinel errors reported by constructor validation.
var (
	// ErrLoggerNotConfigured indicates a nil logger was supplied.
	ErrLoggerNotConfigured = errors.New("logger not configured")
	// ErrTokenizerNotConfigured indicates a nil tokenizer was supplied.
	ErrTokenizerNotConfigured = errors.New("tokenizer not configured")
)

// CommandNotFoundError reports that the spawn attempt failed because the
// executable could not be located or started. It is distinct from a reachable
// process exiting with a non-zero code.
type CommandNotFoundError struct {
	// Command holds the original, un-tokenized command representation.
	Command string
	// Cause holds the underlying spawn failure.
	Cause error
}

// Error implements the error interface.
func (notFoundError CommandNotFoundError) Error() string {
	return fmt.Sprintf(commandNotFoundErrorTemplateConstant, notFoundError.Command)
}

// Unwrap exposes the underlying spawn failure.
func (notFoundError CommandNotFoundError) Unwrap() error {
	return notFoundError.Cause
}

// ProcessTimeoutError reports that execution exceeded the configured timeout
// and the child was forcibly terminated. Captured output is discarded.
type ProcessTimeoutError struct {
	// Command holds the original, un-tokenized command representation.
	Command string
	// ConfiguredTimeout is the limit the caller requested.
	ConfiguredTimeout time.Duration
	// Elapsed is the wall-clock time observed before control returned.
	Elapsed time.Duration
}

// Error implements the error interface.
func (timeoutError ProcessTimeoutError) Error() string {
	return fmt.Sprintf(processTimeoutErrorTemplateConstant, timeoutError.Elapsed, timeoutError.ConfiguredTimeout, timeoutError.Command)
}

// ProcessExecutionError reports a child that ran to completion with a non-zero
// exit code while auto-raise was enabled. The full CommandResult is embedded so
// the caller retains complete context.
type ProcessExecutionError struct {
	// Result holds the complete outcome of the failed execution.
	Result CommandResult
}

// Error implements the error interface.
func (executionError ProcessExecutionError) Error() string {
	standardErrorDetail := emptyStandardErrorDetailConstant
	if len(executionError.Result.StandardError) > 0 {
		standardErrorDetail = fmt.Sprintf(standardErrorDetailTemplateConstant, executionError.Result.StandardError)
	}
	return fmt.Sprintf(processExecutionErrorTemplateConstant, executionError.Result.ExitCode, executionError.Result.Command, standardErrorDetail)
}

// ProcessLaunchError reports that a background spawn itself failed.
type ProcessLaunchError struct {
	// Command holds the original, un-tokenized command representation.
	Command string
	// Cause holds the underlying launch failure.
	Cause error
}

// Error implements the error interface.
func (launchError ProcessLaunchError) Error() string {
	failureDescription := unknownLaunchFailureMessageConstant
	if launchError.Cause != nil {
		failureDescription = launchError.Cause.Error()
	}
	return fmt.Sprintf(processLaunchErrorTemplateConstant, launchError.Command, failureDescription)
}

// Unwrap exposes the underlying launch failure.
func (launchError ProcessLaunchError) Unwrap() error {
	return launchError.Cause
}
