package execproc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/launchpath/cmdkit/internal/platform"
	"github.com/launchpath/cmdkit/internal/tokenize"
)

const (
	backgroundLaunchedLogMessageConstant = "background process launched"
	backgroundDetachedLogFieldConstant   = "detached"

	unstartedHandleWaitMessageConstant = "process handle does not reference a started process"
	unknownExitCodeConstant            = -1
)

// BackgroundProcessLauncher starts caller-managed child processes without
// waiting for them. It enforces no timeout; once Launch returns, the handle's
// liveness, termination, and output draining belong entirely to the caller.
type BackgroundProcessLauncher struct {
	logger       *zap.Logger
	capabilities platform.Capabilities
	tokenizer    tokenize.Tokenizer
}

// NewBackgroundProcessLauncher constructs a launcher whose tokenizer strategy
// matches the supplied platform capabilities.
func NewBackgroundProcessLauncher(launchLogger *zap.Logger, platformCapabilities platform.Capabilities) (*BackgroundProcessLauncher, error) {
	if launchLogger == nil {
		return nil, ErrLoggerNotConfigured
	}
	return &BackgroundProcessLauncher{
		logger:       launchLogger,
		capabilities: platformCapabilities,
		tokenizer:    tokenize.ForCapabilities(platformCapabilities),
	}, nil
}

// Launch spawns the command and returns immediately with a live handle.
// Ownership of the handle transfers to the caller on return; the launcher
// performs no reaping of its own.
func (launcher *BackgroundProcessLauncher) Launch(command CommandSpecification, options LaunchOptions) (*ProcessHandle, error) {
	argumentVector, vectorError := launcher.buildArgumentVector(command)
	if vectorError != nil {
		return nil, vectorError
	}
	if len(argumentVector) == 0 {
		return nil, ProcessLaunchError{Command: command.String(), Cause: errors.New(emptyArgumentVectorMessageConstant)}
	}

	executable := exec.Command(argumentVector[0], argumentVector[1:]...)
	executable.Dir = options.WorkingDirectory
	executable.Env = buildChildEnvironment(options.EnvironmentVariables, options.ReplaceEnvironment)

	var standardOutputPipe io.ReadCloser
	var standardErrorPipe io.ReadCloser
	if !options.DiscardOutput {
		var standardOutputPipeError error
		standardOutputPipe, standardOutputPipeError = executable.StdoutPipe()
		if standardOutputPipeError != nil {
			return nil, ProcessLaunchError{Command: command.String(), Cause: standardOutputPipeError}
		}
		var standardErrorPipeError error
		standardErrorPipe, standardErrorPipeError = executable.StderrPipe()
		if standardErrorPipeError != nil {
			return nil, ProcessLaunchError{Command: command.String(), Cause: standardErrorPipeError}
		}
	}

	if options.DetachSession && launcher.capabilities.SupportsSessionDetachment {
		configureSessionDetachment(executable)
	}

	if startError := executable.Start(); startError != nil {
		return nil, ProcessLaunchError{Command: command.String(), Cause: startError}
	}

	processHandle := &ProcessHandle{
		commandLabel:   command.String(),
		executable:     executable,
		StandardOutput: standardOutputPipe,
		StandardError:  standardErrorPipe,
	}

	launcher.logger.Debug(backgroundLaunchedLogMessageConstant,
		zap.String(logFieldCommandConstant, processHandle.commandLabel),
		zap.Int(logFieldProcessIDConstant, processHandle.ProcessIdentifier()),
		zap.Bool(backgroundDetachedLogFieldConstant, options.DetachSession),
	)
	return processHandle, nil
}

func (launcher *BackgroundProcessLauncher) buildArgumentVector(command CommandSpecification) ([]string, error) {
	if command.IsExplicit() {
		duplicatedArguments := make([]string, len(command.Arguments))
		copy(duplicatedArguments, command.Arguments)
		return duplicatedArguments, nil
	}

	tokenizedArguments, tokenizeError := launcher.tokenizer.Tokenize(command.Raw)
	if tokenizeError != nil {
		return nil, fmt.Errorf(tokenizationFailureTemplateConstant, command.String(), tokenizeError)
	}
	return tokenizedArguments, nil
}

// ProcessHandle owns a running background process and the readable ends of its
// stdout and stderr pipes. An abandoned handle is a caller-level resource
// management concern; the handle never reaps on its own.
type ProcessHandle struct {
	commandLabel string
	executable   *exec.Cmd
	// StandardOutput is the readable end of the child stdout pipe, nil when the launch discarded output.
	StandardOutput io.ReadCloser
	// StandardError is the readable end of the child stderr pipe, nil when the launch discarded output.
	StandardError io.ReadCloser
}

// Command returns the original command representation for diagnostics.
func (handle *ProcessHandle) Command() string {
	return handle.commandLabel
}

// ProcessIdentifier returns the child process identifier, zero before a
// successful start.
func (handle *ProcessHandle) ProcessIdentifier() int {
	if handle.executable == nil || handle.executable.Process == nil {
		return 0
	}
	return handle.executable.Process.Pid
}

// IsRunning reports whether the child process still exists without reaping it.
func (handle *ProcessHandle) IsRunning(executionContext context.Context) (bool, error) {
	processIdentifier := handle.ProcessIdentifier()
	if processIdentifier == 0 {
		return false, nil
	}
	return process.PidExistsWithContext(executionContext, int32(processIdentifier))
}

// Wait blocks until the child exits and returns its exit code, reaping it.
func (handle *ProcessHandle) Wait() (int, error) {
	if handle.executable == nil {
		return unknownExitCodeConstant, errors.New(unstartedHandleWaitMessageConstant)
	}
	waitError := handle.executable.Wait()
	if waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(waitError, &exitError) {
			return exitError.ExitCode(), nil
		}
		return unknownExitCodeConstant, waitError
	}
	return 0, nil
}

// Terminate asks the child to stop using the platform termination signal.
func (handle *ProcessHandle) Terminate() error {
	if handle.executable == nil || handle.executable.Process == nil {
		return nil
	}
	return signalGracefulTermination(handle.executable.Process)
}

// Kill force-terminates the child.
func (handle *ProcessHandle) Kill() error {
	if handle.executable == nil || handle.executable.Process == nil {
		return nil
	}
	return handle.executable.Process.Kill()
}

// Close releases the pipe ends without touching the child process.
func (handle *ProcessHandle) Close() error {
	var closeFailures []error
	if handle.StandardOutput != nil {
		if closeError := handle.StandardOutput.Close(); closeError != nil {
			closeFailures = append(closeFailures, closeError)
		}
	}
	if handle.StandardError != nil {
		if closeError := handle.StandardError.Close(); closeError != nil {
			closeFailures = append(closeFailures, closeError)
		}
	}
	return errors.Join(closeFailures...)
}
