package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launchpath/cmdkit/cmd/cli"
	"github.com/launchpath/cmdkit/internal/execproc"
)

const (
	testPosixSkipReasonConstant       = "requires a POSIX shell"
	testMissingExecutableNameConstant = "definitely-not-a-real-command-5c9e2d"
	testExecutableFileModeConstant    = 0o755
)

func executeApplicationCommand(testInstance *testing.T, commandArguments ...string) (string, string, error) {
	testInstance.Helper()

	application := cli.NewApplication()
	rootCommand := application.RootCommand()

	standardOutputBuffer := &bytes.Buffer{}
	standardErrorBuffer := &bytes.Buffer{}
	rootCommand.SetOut(standardOutputBuffer)
	rootCommand.SetErr(standardErrorBuffer)
	rootCommand.SetArgs(commandArguments)

	executionError := rootCommand.Execute()
	return standardOutputBuffer.String(), standardErrorBuffer.String(), executionError
}

func TestRootCommandRegistersSubcommands(testInstance *testing.T) {
	rootCommand := cli.NewApplication().RootCommand()

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	for _, expectedCommandName := range []string{"run", "which", "exists", "spawn"} {
		require.True(testInstance, registeredCommandNames[expectedCommandName], expectedCommandName)
	}
}

func TestWhichCommandResolvesExecutableFromSearchPath(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	executablePath := filepath.Join(searchDirectory, "probe-target")
	require.NoError(testInstance, os.WriteFile(executablePath, []byte("#!/bin/sh\n"), testExecutableFileModeConstant))

	standardOutput, _, executionError := executeApplicationCommand(testInstance, "which", "--path", searchDirectory, "probe-target")

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, executablePath+"\n", standardOutput)
}

func TestWhichCommandFailsForMissingExecutable(testInstance *testing.T) {
	emptyDirectory := testInstance.TempDir()

	_, _, executionError := executeApplicationCommand(testInstance, "which", "--path", emptyDirectory, testMissingExecutableNameConstant)

	require.Error(testInstance, executionError)
}

func TestExistsCommandReportsMissingCommand(testInstance *testing.T) {
	standardOutput, _, executionError := executeApplicationCommand(testInstance, "exists", testMissingExecutableNameConstant)

	require.Error(testInstance, executionError)
	require.Equal(testInstance, "false\n", standardOutput)
}

func TestExistsCommandReportsPresentCommand(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip(testPosixSkipReasonConstant)
	}

	standardOutput, _, executionError := executeApplicationCommand(testInstance, "exists", "sh")

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "true\n", standardOutput)
}

func TestRunCommandPrintsCapturedOutput(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip(testPosixSkipReasonConstant)
	}

	standardOutput, _, executionError := executeApplicationCommand(testInstance, "run", "--", "sh", "-c", "echo cli-output")

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "cli-output\n", standardOutput)
}

func TestRunCommandFailsOnNonZeroExit(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip(testPosixSkipReasonConstant)
	}

	_, _, executionError := executeApplicationCommand(testInstance, "run", "--", "sh", "-c", "exit 3")

	require.Error(testInstance, executionError)
	executionFailure := execproc.ProcessExecutionError{}
	require.ErrorAs(testInstance, executionError, &executionFailure)
	require.Equal(testInstance, 3, executionFailure.Result.ExitCode)
}

func TestRunCommandAllowFailureSuppressesError(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip(testPosixSkipReasonConstant)
	}

	_, _, executionError := executeApplicationCommand(testInstance, "run", "--allow-failure", "--", "sh", "-c", "exit 3")

	require.NoError(testInstance, executionError)
}

func TestRunCommandRequiresCommandInput(testInstance *testing.T) {
	_, _, executionError := executeApplicationCommand(testInstance, "run")
	require.Error(testInstance, executionError)
}

func TestRunCommandRejectsConflictingCommandInputs(testInstance *testing.T) {
	_, _, executionError := executeApplicationCommand(testInstance, "run", "--command", "echo raw", "--", "echo", "positional")
	require.Error(testInstance, executionError)
}

func TestSpawnCommandPrintsProcessIdentifier(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip(testPosixSkipReasonConstant)
	}

	standardOutput, _, executionError := executeApplicationCommand(testInstance, "spawn", "--", "sh", "-c", "exit 0")

	require.NoError(testInstance, executionError)
	require.Regexp(testInstance, `^\d+\n$`, standardOutput)
}
