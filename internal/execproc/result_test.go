package execproc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/launchpath/cmdkit/internal/execproc"
)

const (
	testBothStreamsCaseNameConstant = "both_streams_joined"
	testOnlyStdoutCaseNameConstant  = "stdout_only"
	testOnlyStderrCaseNameConstant  = "stderr_only"
	testNoOutputCaseNameConstant    = "no_output"
)

func TestCommandResultCombinedOutput(testInstance *testing.T) {
	testCases := []struct {
		name           string
		standardOutput string
		standardError  string
		expectedOutput string
	}{
		{
			name:           testBothStreamsCaseNameConstant,
			standardOutput: "out",
			standardError:  "err",
			expectedOutput: "out\nerr",
		},
		{
			name:           testOnlyStdoutCaseNameConstant,
			standardOutput: "out",
			standardError:  "",
			expectedOutput: "out",
		},
		{
			name:           testOnlyStderrCaseNameConstant,
			standardOutput: "",
			standardError:  "err",
			expectedOutput: "err",
		},
		{
			name:           testNoOutputCaseNameConstant,
			standardOutput: "",
			standardError:  "",
			expectedOutput: "",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			commandResult := execproc.CommandResult{
				StandardOutput: testCase.standardOutput,
				StandardError:  testCase.standardError,
			}
			require.Equal(testInstance, testCase.expectedOutput, commandResult.CombinedOutput())
		})
	}
}

func TestCommandNotFoundErrorDescribesCommandAndUnwraps(testInstance *testing.T) {
	underlyingFailure := errors.New("no such file")
	notFoundFailure := execproc.CommandNotFoundError{Command: "missing-tool", Cause: underlyingFailure}

	require.Contains(testInstance, notFoundFailure.Error(), "missing-tool")
	require.Contains(testInstance, notFoundFailure.Error(), "PATH")
	require.ErrorIs(testInstance, notFoundFailure, underlyingFailure)
}

func TestProcessTimeoutErrorDescribesDurations(testInstance *testing.T) {
	timeoutFailure := execproc.ProcessTimeoutError{
		Command:           "sleep 9",
		ConfiguredTimeout: time.Second,
		Elapsed:           1200 * time.Millisecond,
	}

	require.Contains(testInstance, timeoutFailure.Error(), "sleep 9")
	require.Contains(testInstance, timeoutFailure.Error(), "1s")
	require.Contains(testInstance, timeoutFailure.Error(), "1.2s")
}

func TestProcessExecutionErrorIncludesStandardErrorDetail(testInstance *testing.T) {
	executionFailure := execproc.ProcessExecutionError{
		Result: execproc.CommandResult{
			ExitCode:      2,
			Command:       "grep pattern",
			StandardError: "no matches",
		},
	}
	require.Contains(testInstance, executionFailure.Error(), "exit code 2")
	require.Contains(testInstance, executionFailure.Error(), "grep pattern")
	require.Contains(testInstance, executionFailure.Error(), "no matches")

	quietFailure := execproc.ProcessExecutionError{
		Result: execproc.CommandResult{ExitCode: 5, Command: "quiet-tool"},
	}
	require.Contains(testInstance, quietFailure.Error(), "exit code 5")
	require.NotContains(testInstance, quietFailure.Error(), ": \n")
}

func TestProcessLaunchErrorDescribesCauseAndUnwraps(testInstance *testing.T) {
	underlyingFailure := errors.New("pipe allocation failed")
	launchFailure := execproc.ProcessLaunchError{Command: "daemon --serve", Cause: underlyingFailure}

	require.Contains(testInstance, launchFailure.Error(), "daemon --serve")
	require.Contains(testInstance, launchFailure.Error(), "pipe allocation failed")
	require.ErrorIs(testInstance, launchFailure, underlyingFailure)
}

func TestCommandSpecificationRendering(testInstance *testing.T) {
	rawSpecification := execproc.CommandFromString("git status")
	require.False(testInstance, rawSpecification.IsExplicit())
	require.Equal(testInstance, "git status", rawSpecification.String())

	explicitSpecification := execproc.CommandFromArguments("git", "status", "--porcelain")
	require.True(testInstance, explicitSpecification.IsExplicit())
	require.Equal(testInstance, "git status --porcelain", explicitSpecification.String())

	emptyExplicitSpecification := execproc.CommandFromArguments()
	require.True(testInstance, emptyExplicitSpecification.IsExplicit())
}
