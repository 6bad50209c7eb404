package execproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/launchpath/cmdkit/internal/platform"
	"github.com/launchpath/cmdkit/internal/tokenize"
)

const (
	forcedReapDelayConstant               = 5 * time.Second
	trailingWhitespaceCutsetConstant      = " \t\r\n"
	environmentAssignmentTemplateConstant = "%s=%s"

	commandStartedLogMessageConstant   = "command started"
	commandCompletedLogMessageConstant = "command completed"
	commandNotFoundLogMessageConstant  = "command not found"
	commandTimedOutLogMessageConstant  = "command timed out"
	commandFailedLogMessageConstant    = "command execution failed"

	logFieldCommandConstant       = "command"
	logFieldExitCodeConstant      = "exit_code"
	logFieldExecutionTimeConstant = "execution_time"
	logFieldTimeoutConstant       = "timeout"
	logFieldProcessIDConstant     = "pid"

	tokenizationFailureTemplateConstant  = "unable to prepare command %s: %w"
	executionFailureTemplateConstant     = "unable to execute command %s: %w"
	standardOutputDecodeTemplateConstant = "standard output of %s: %w"
	standardErrorDecodeTemplateConstant  = "standard error of %s: %w"
	emptyArgumentVectorMessageConstant   = "command specification produced an empty argument vector"
)

// ProcessRunner executes commands synchronously, blocking the calling
// goroutine until the child exits or the configured timeout forces
// termination. Instances hold no mutable per-execution state, so concurrent
// calls are fully independent.
type ProcessRunner struct {
	logger       *zap.Logger
	capabilities platform.Capabilities
	tokenizer    tokenize.Tokenizer
	observer     CommandEventObserver
}

// NewProcessRunner constructs a runner whose tokenizer strategy matches the
// supplied platform capabilities.
func NewProcessRunner(executionLogger *zap.Logger, platformCapabilities platform.Capabilities) (*ProcessRunner, error) {
	return NewProcessRunnerWithTokenizer(executionLogger, platformCapabilities, tokenize.ForCapabilities(platformCapabilities))
}

// NewProcessRunnerWithTokenizer constructs a runner around an explicit tokenizer strategy.
func NewProcessRunnerWithTokenizer(executionLogger *zap.Logger, platformCapabilities platform.Capabilities, commandTokenizer tokenize.Tokenizer) (*ProcessRunner, error) {
	if executionLogger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandTokenizer == nil {
		return nil, ErrTokenizerNotConfigured
	}
	return &ProcessRunner{
		logger:       executionLogger,
		capabilities: platformCapabilities,
		tokenizer:    commandTokenizer,
		observer:     noopCommandEventObserver{},
	}, nil
}

// RegisterCommandEventObserver attaches an observer receiving lifecycle notifications.
func (runner *ProcessRunner) RegisterCommandEventObserver(commandEventObserver CommandEventObserver) {
	if commandEventObserver == nil {
		runner.observer = noopCommandEventObserver{}
		return
	}
	runner.observer = commandEventObserver
}

// Execute spawns the command and blocks until it exits or the timeout
// elapses, whichever happens first. Exactly one child process is spawned per
// call and no retries are attempted.
func (runner *ProcessRunner) Execute(executionContext context.Context, command CommandSpecification, options ExecutionOptions) (CommandResult, error) {
	startInstant := time.Now()

	argumentVector, vectorError := runner.buildArgumentVector(command, options)
	if vectorError != nil {
		return CommandResult{}, vectorError
	}
	if len(argumentVector) == 0 {
		return CommandResult{}, errors.New(emptyArgumentVectorMessageConstant)
	}

	if executionContext == nil {
		executionContext = context.Background()
	}
	childContext := executionContext
	if options.Timeout > 0 {
		var cancelChildContext context.CancelFunc
		childContext, cancelChildContext = context.WithTimeout(executionContext, options.Timeout)
		defer cancelChildContext()
	}

	executable := exec.CommandContext(childContext, argumentVector[0], argumentVector[1:]...)
	executable.Dir = options.WorkingDirectory
	executable.Env = buildChildEnvironment(options.EnvironmentVariables, options.ReplaceEnvironment)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	if options.CaptureOutput {
		executable.Stdout = &standardOutputBuffer
		executable.Stderr = &standardErrorBuffer
	}
	if len(options.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(options.StandardInput)
	}

	configureProcessGroup(executable)
	executable.Cancel = func() error {
		return terminateProcessTree(executable)
	}
	executable.WaitDelay = forcedReapDelayConstant

	runner.observer.CommandStarted(command)
	runner.logger.Debug(commandStartedLogMessageConstant, zap.String(logFieldCommandConstant, command.String()))

	runError := executable.Run()
	executionTime := time.Since(startInstant)

	processIdentifier := 0
	if executable.Process != nil {
		processIdentifier = executable.Process.Pid
	}

	if runError == nil {
		return runner.finishExecution(command, options, 0, standardOutputBuffer.Bytes(), standardErrorBuffer.Bytes(), executionTime, processIdentifier)
	}

	spawnError := &exec.Error{}
	if errors.As(runError, &spawnError) || errors.Is(runError, exec.ErrNotFound) {
		notFoundFailure := CommandNotFoundError{Command: command.String(), Cause: runError}
		runner.observer.CommandExecutionFailed(command, notFoundFailure)
		runner.logger.Warn(commandNotFoundLogMessageConstant, zap.String(logFieldCommandConstant, command.String()))
		return CommandResult{}, notFoundFailure
	}

	if options.Timeout > 0 && errors.Is(childContext.Err(), context.DeadlineExceeded) && !errors.Is(executionContext.Err(), context.DeadlineExceeded) {
		timeoutFailure := ProcessTimeoutError{
			Command:           command.String(),
			ConfiguredTimeout: options.Timeout,
			Elapsed:           executionTime,
		}
		runner.observer.CommandExecutionFailed(command, timeoutFailure)
		runner.logger.Warn(commandTimedOutLogMessageConstant,
			zap.String(logFieldCommandConstant, command.String()),
			zap.Duration(logFieldTimeoutConstant, options.Timeout),
			zap.Duration(logFieldExecutionTimeConstant, executionTime),
		)
		return CommandResult{}, timeoutFailure
	}

	exitError := &exec.ExitError{}
	if errors.As(runError, &exitError) {
		return runner.finishExecution(command, options, exitError.ExitCode(), standardOutputBuffer.Bytes(), standardErrorBuffer.Bytes(), executionTime, processIdentifier)
	}

	genericFailure := fmt.Errorf(executionFailureTemplateConstant, command.String(), runError)
	runner.observer.CommandExecutionFailed(command, genericFailure)
	runner.logger.Error(commandFailedLogMessageConstant,
		zap.String(logFieldCommandConstant, command.String()),
		zap.Error(runError),
	)
	return CommandResult{}, genericFailure
}

// ExecuteAndCapture runs the command with output capture forced on and
// returns its standard output.
func (runner *ProcessRunner) ExecuteAndCapture(executionContext context.Context, command CommandSpecification, options ExecutionOptions) (string, error) {
	options.CaptureOutput = true
	executionResult, executionError := runner.Execute(executionContext, command, options)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

func (runner *ProcessRunner) finishExecution(command CommandSpecification, options ExecutionOptions, exitCode int, standardOutputBytes []byte, standardErrorBytes []byte, executionTime time.Duration, processIdentifier int) (CommandResult, error) {
	standardOutputText := ""
	standardErrorText := ""
	if options.CaptureOutput {
		decodedStandardOutput, standardOutputError := decodeCapturedOutput(standardOutputBytes, options.EncodingName, options.DecodeErrorPolicy)
		if standardOutputError != nil {
			decodeFailure := fmt.Errorf(standardOutputDecodeTemplateConstant, command.String(), standardOutputError)
			runner.observer.CommandExecutionFailed(command, decodeFailure)
			return CommandResult{}, decodeFailure
		}
		decodedStandardError, standardErrorError := decodeCapturedOutput(standardErrorBytes, options.EncodingName, options.DecodeErrorPolicy)
		if standardErrorError != nil {
			decodeFailure := fmt.Errorf(standardErrorDecodeTemplateConstant, command.String(), standardErrorError)
			runner.observer.CommandExecutionFailed(command, decodeFailure)
			return CommandResult{}, decodeFailure
		}
		standardOutputText = strings.TrimRight(decodedStandardOutput, trailingWhitespaceCutsetConstant)
		standardErrorText = strings.TrimRight(decodedStandardError, trailingWhitespaceCutsetConstant)
	}

	executionResult := CommandResult{
		Success:        exitCode == 0,
		ExitCode:       exitCode,
		StandardOutput: standardOutputText,
		StandardError:  standardErrorText,
		Command:        command.String(),
		ExecutionTime:  executionTime,
		ProcessID:      processIdentifier,
	}

	runner.observer.CommandCompleted(command, executionResult)
	runner.logger.Debug(commandCompletedLogMessageConstant,
		zap.String(logFieldCommandConstant, executionResult.Command),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		zap.Duration(logFieldExecutionTimeConstant, executionResult.ExecutionTime),
		zap.Int(logFieldProcessIDConstant, executionResult.ProcessID),
	)

	if !executionResult.Success && options.RaiseOnFailure {
		return executionResult, ProcessExecutionError{Result: executionResult}
	}
	return executionResult, nil
}

func (runner *ProcessRunner) buildArgumentVector(command CommandSpecification, options ExecutionOptions) ([]string, error) {
	if options.UseShell {
		shellCommandText := command.Raw
		if command.IsExplicit() {
			shellCommandText = tokenize.JoinArguments(command.Arguments)
		}
		return []string{runner.capabilities.ShellExecutable, runner.capabilities.ShellCommandFlag, shellCommandText}, nil
	}

	if command.IsExplicit() {
		duplicatedArguments := make([]string, len(command.Arguments))
		copy(duplicatedArguments, command.Arguments)
		return duplicatedArguments, nil
	}

	tokenizedArguments, tokenizeError := runner.tokenizer.Tokenize(command.Raw)
	if tokenizeError != nil {
		return nil, fmt.Errorf(tokenizationFailureTemplateConstant, command.String(), tokenizeError)
	}
	return tokenizedArguments, nil
}

// buildChildEnvironment renders the child environment. A nil return inherits
// the parent environment unchanged.
func buildChildEnvironment(environmentVariables map[string]string, replaceEnvironment bool) []string {
	if replaceEnvironment {
		replacementEnvironment := make([]string, 0, len(environmentVariables))
		for environmentKey, environmentValue := range environmentVariables {
			replacementEnvironment = append(replacementEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
		}
		return replacementEnvironment
	}

	if len(environmentVariables) == 0 {
		return nil
	}

	mergedEnvironment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentVariables {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
	}
	return mergedEnvironment
}
