package execproc_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/launchpath/cmdkit/internal/execproc"
	"github.com/launchpath/cmdkit/internal/platform"
)

const (
	testBackgroundMarkerConstant         = "marker"
	testBackgroundSleepCommandConstant   = "sleep 5"
	testSignalTerminatedExitCodeConstant = -1
)

func newTestBackgroundLauncher(testInstance *testing.T) *execproc.BackgroundProcessLauncher {
	testInstance.Helper()
	backgroundLauncher, creationError := execproc.NewBackgroundProcessLauncher(zaptest.NewLogger(testInstance), platform.Detect())
	require.NoError(testInstance, creationError)
	return backgroundLauncher
}

func TestNewBackgroundProcessLauncherValidatesLogger(testInstance *testing.T) {
	_, creationError := execproc.NewBackgroundProcessLauncher(nil, platform.Detect())
	require.ErrorIs(testInstance, creationError, execproc.ErrLoggerNotConfigured)
}

func TestLaunchReturnsLiveCallerOwnedHandle(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromString(testBackgroundSleepCommandConstant), execproc.LaunchOptions{})
	require.NoError(testInstance, launchError)
	defer processHandle.Close()

	require.Greater(testInstance, processHandle.ProcessIdentifier(), 0)
	require.Equal(testInstance, testBackgroundSleepCommandConstant, processHandle.Command())

	running, livenessError := processHandle.IsRunning(context.Background())
	require.NoError(testInstance, livenessError)
	require.True(testInstance, running)

	require.NoError(testInstance, processHandle.Terminate())
	exitCode, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, testSignalTerminatedExitCodeConstant, exitCode)
}

func TestLaunchedProcessReportsExitCodeThroughWait(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromArguments("sh", "-c", "exit 4"), execproc.LaunchOptions{})
	require.NoError(testInstance, launchError)
	defer processHandle.Close()

	exitCode, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, 4, exitCode)

	running, livenessError := processHandle.IsRunning(context.Background())
	require.NoError(testInstance, livenessError)
	require.False(testInstance, running)
}

func TestLaunchedProcessOutputIsReadableThroughPipes(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromArguments("sh", "-c", "printf marker; printf warning 1>&2"), execproc.LaunchOptions{})
	require.NoError(testInstance, launchError)

	standardOutputBytes, standardOutputReadError := io.ReadAll(processHandle.StandardOutput)
	require.NoError(testInstance, standardOutputReadError)
	standardErrorBytes, standardErrorReadError := io.ReadAll(processHandle.StandardError)
	require.NoError(testInstance, standardErrorReadError)

	exitCode, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, 0, exitCode)
	require.Equal(testInstance, testBackgroundMarkerConstant, string(standardOutputBytes))
	require.Equal(testInstance, "warning", string(standardErrorBytes))
}

func TestLaunchTokenizesRawCommandWithQuoting(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromString(`printf %s "quoted token"`), execproc.LaunchOptions{})
	require.NoError(testInstance, launchError)

	standardOutputBytes, readError := io.ReadAll(processHandle.StandardOutput)
	require.NoError(testInstance, readError)

	_, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, "quoted token", string(standardOutputBytes))
}

func TestLaunchDetachedSessionStillYieldsUsableHandle(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromString(testBackgroundSleepCommandConstant), execproc.LaunchOptions{DetachSession: true})
	require.NoError(testInstance, launchError)
	defer processHandle.Close()

	running, livenessError := processHandle.IsRunning(context.Background())
	require.NoError(testInstance, livenessError)
	require.True(testInstance, running)

	require.NoError(testInstance, processHandle.Kill())
	exitCode, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, testSignalTerminatedExitCodeConstant, exitCode)
}

func TestLaunchDiscardedOutputOmitsPipes(testInstance *testing.T) {
	requirePosixShell(testInstance)

	backgroundLauncher := newTestBackgroundLauncher(testInstance)
	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromArguments("sh", "-c", "echo ignored"), execproc.LaunchOptions{DiscardOutput: true})
	require.NoError(testInstance, launchError)

	require.Nil(testInstance, processHandle.StandardOutput)
	require.Nil(testInstance, processHandle.StandardError)

	exitCode, waitError := processHandle.Wait()
	require.NoError(testInstance, waitError)
	require.Equal(testInstance, 0, exitCode)
	require.NoError(testInstance, processHandle.Close())
}

func TestLaunchReportsSpawnFailure(testInstance *testing.T) {
	backgroundLauncher := newTestBackgroundLauncher(testInstance)

	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromArguments(testMissingExecutableNameConstant), execproc.LaunchOptions{})
	require.Nil(testInstance, processHandle)
	launchFailure := execproc.ProcessLaunchError{}
	require.ErrorAs(testInstance, launchError, &launchFailure)
	require.Equal(testInstance, testMissingExecutableNameConstant, launchFailure.Command)
}

func TestLaunchRejectsEmptyCommand(testInstance *testing.T) {
	backgroundLauncher := newTestBackgroundLauncher(testInstance)

	processHandle, launchError := backgroundLauncher.Launch(execproc.CommandFromString(""), execproc.LaunchOptions{})
	require.Nil(testInstance, processHandle)
	launchFailure := execproc.ProcessLaunchError{}
	require.ErrorAs(testInstance, launchError, &launchFailure)
}

func TestUnstartedHandleReportsNoProcess(testInstance *testing.T) {
	unstartedHandle := &execproc.ProcessHandle{}

	require.Equal(testInstance, 0, unstartedHandle.ProcessIdentifier())

	running, livenessError := unstartedHandle.IsRunning(context.Background())
	require.NoError(testInstance, livenessError)
	require.False(testInstance, running)

	exitCode, waitError := unstartedHandle.Wait()
	require.Error(testInstance, waitError)
	require.Equal(testInstance, testSignalTerminatedExitCodeConstant, exitCode)

	require.NoError(testInstance, unstartedHandle.Terminate())
	require.NoError(testInstance, unstartedHandle.Kill())
	require.NoError(testInstance, unstartedHandle.Close())
}
