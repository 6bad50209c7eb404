package execproc

import "time"

const combinedOutputSeparatorConstant = "\n"

// CommandResult is the immutable outcome of one synchronous execution. It is
// constructed exactly once after the child terminates or is killed on timeout
// and never mutated afterward.
type CommandResult struct {
	// Success is true exactly when ExitCode is zero.
	Success bool
	// ExitCode holds the child exit status.
	ExitCode int
	// StandardOutput holds decoded stdout with trailing whitespace stripped; empty when capture was disabled.
	StandardOutput string
	// StandardError holds decoded stderr with trailing whitespace stripped; empty when capture was disabled.
	StandardError string
	// Command holds the original, un-tokenized command representation for diagnostics.
	Command string
	// ExecutionTime is the wall-clock duration from spawn attempt to completion; never negative.
	ExecutionTime time.Duration
	// ProcessID holds the child process identifier, zero when the runtime exposed none.
	ProcessID int
}

// CombinedOutput joins standard output and standard error for callers that
// want a single diagnostic stream.
func (result CommandResult) CombinedOutput() string {
	if len(result.StandardError) == 0 {
		return result.StandardOutput
	}
	if len(result.StandardOutput) == 0 {
		return result.StandardError
	}
	return result.StandardOutput + combinedOutputSeparatorConstant + result.StandardError
}
