package cli

import (
	"errors"

	"github.com/launchpath/cmdkit/internal/execproc"
)

const genericFailureExitCodeConstant = 1

// ExitCodeForError maps an application error to the process exit code. A child
// that ran to completion with a non-zero exit code propagates that code to the
// caller; every other failure maps to the generic failure code.
func ExitCodeForError(executionError error) int {
	if executionError == nil {
		return 0
	}

	executionFailure := execproc.ProcessExecutionError{}
	if errors.As(executionError, &executionFailure) && executionFailure.Result.ExitCode > 0 {
		return executionFailure.Result.ExitCode
	}

	return genericFailureExitCodeConstant
}
