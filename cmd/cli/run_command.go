package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/launchpath/cmdkit/internal/execproc"
	"github.com/launchpath/cmdkit/internal/platform"
	"github.com/launchpath/cmdkit/internal/ui"
	"github.com/launchpath/cmdkit/internal/utils"
)

const (
	runCommandUseConstant   = "run [flags] -- <executable> [arguments...]"
	runCommandShortConstant = "Execute a command synchronously and report its structured result"
	runCommandLongConstant  = "run spawns a single child process, waits for it to exit or for the timeout to elapse, and prints the captured output. A non-zero exit fails the invocation unless --allow-failure is set."

	rawCommandFlagNameConstant        = "command"
	rawCommandFlagUsageConstant       = "Raw command string tokenized per platform shell semantics."
	timeoutFlagNameConstant           = "timeout"
	timeoutFlagUsageConstant          = "Maximum execution duration before the child is forcibly terminated (0 waits indefinitely)."
	workingDirectoryFlagNameConstant  = "workdir"
	workingDirectoryFlagUsageConstant = "Working directory for the child process."
	environmentFlagNameConstant       = "env"
	environmentFlagUsageConstant      = "Environment variable for the child as KEY=VALUE; repeatable."
	shellFlagNameConstant             = "shell"
	shellFlagUsageConstant            = "Pass the command verbatim to the platform shell instead of tokenizing it."
	noCaptureFlagNameConstant         = "no-capture"
	noCaptureFlagUsageConstant        = "Discard child output instead of capturing it."
	allowFailureFlagNameConstant      = "allow-failure"
	allowFailureFlagUsageConstant     = "Report a non-zero exit in the result instead of failing the invocation."
	encodingFlagNameConstant          = "encoding"
	encodingFlagUsageConstant         = "Text encoding used to decode captured output."
	strictDecodeFlagNameConstant      = "strict-decode"
	strictDecodeFlagUsageConstant     = "Fail when captured output cannot be decoded instead of substituting replacement characters."

	capturedOutputTrailerConstant = "\n"
)

func (application *Application) buildRunCommand() *cobra.Command {
	runCommand := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortConstant,
		Long:  runCommandLongConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.executeRunCommand(command, arguments)
		},
	}

	runCommand.Flags().StringP(rawCommandFlagNameConstant, "c", "", rawCommandFlagUsageConstant)
	runCommand.Flags().Duration(timeoutFlagNameConstant, 0, timeoutFlagUsageConstant)
	runCommand.Flags().String(workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)
	runCommand.Flags().StringArray(environmentFlagNameConstant, nil, environmentFlagUsageConstant)
	runCommand.Flags().Bool(shellFlagNameConstant, false, shellFlagUsageConstant)
	runCommand.Flags().Bool(noCaptureFlagNameConstant, false, noCaptureFlagUsageConstant)
	runCommand.Flags().Bool(allowFailureFlagNameConstant, false, allowFailureFlagUsageConstant)
	runCommand.Flags().String(encodingFlagNameConstant, "", encodingFlagUsageConstant)
	runCommand.Flags().Bool(strictDecodeFlagNameConstant, false, strictDecodeFlagUsageConstant)

	return runCommand
}

func (application *Application) executeRunCommand(command *cobra.Command, arguments []string) error {
	rawCommandValue, _ := command.Flags().GetString(rawCommandFlagNameConstant)
	commandSpecification, specificationError := buildCommandSpecification(arguments, rawCommandValue)
	if specificationError != nil {
		return specificationError
	}

	executionOptions, optionsError := application.resolveRunOptions(command.Flags())
	if optionsError != nil {
		return optionsError
	}

	commandLogger := application.commandLogger(command)
	processRunner, runnerError := execproc.NewProcessRunner(commandLogger, platform.Detect())
	if runnerError != nil {
		return runnerError
	}
	processRunner.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(commandLogger))

	executionResult, executionError := processRunner.Execute(command.Context(), commandSpecification, executionOptions)

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	if len(executionResult.StandardOutput) > 0 {
		fmt.Fprint(outputWriter, executionResult.StandardOutput+capturedOutputTrailerConstant)
	}
	if len(executionResult.StandardError) > 0 {
		fmt.Fprint(command.ErrOrStderr(), executionResult.StandardError+capturedOutputTrailerConstant)
	}

	return executionError
}

func (application *Application) resolveRunOptions(commandFlags *pflag.FlagSet) (execproc.ExecutionOptions, error) {
	runConfiguration := application.configuration.Commands.Run

	executionOptions := execproc.DefaultExecutionOptions()
	executionOptions.Timeout = runConfiguration.Timeout
	executionOptions.UseShell = runConfiguration.Shell
	executionOptions.CaptureOutput = runConfiguration.CaptureOutput
	executionOptions.RaiseOnFailure = !runConfiguration.AllowFailure
	executionOptions.WorkingDirectory = runConfiguration.WorkingDirectory
	if len(runConfiguration.Encoding) > 0 {
		executionOptions.EncodingName = runConfiguration.Encoding
	}
	if runConfiguration.StrictDecode {
		executionOptions.DecodeErrorPolicy = execproc.DecodeErrorPolicyStrict
	}

	if commandFlags.Changed(timeoutFlagNameConstant) {
		timeoutValue, _ := commandFlags.GetDuration(timeoutFlagNameConstant)
		executionOptions.Timeout = timeoutValue
	}
	if commandFlags.Changed(workingDirectoryFlagNameConstant) {
		workingDirectoryValue, _ := commandFlags.GetString(workingDirectoryFlagNameConstant)
		executionOptions.WorkingDirectory = workingDirectoryValue
	}
	if commandFlags.Changed(shellFlagNameConstant) {
		shellValue, _ := commandFlags.GetBool(shellFlagNameConstant)
		executionOptions.UseShell = shellValue
	}
	if commandFlags.Changed(noCaptureFlagNameConstant) {
		noCaptureValue, _ := commandFlags.GetBool(noCaptureFlagNameConstant)
		executionOptions.CaptureOutput = !noCaptureValue
	}
	if commandFlags.Changed(allowFailureFlagNameConstant) {
		allowFailureValue, _ := commandFlags.GetBool(allowFailureFlagNameConstant)
		executionOptions.RaiseOnFailure = !allowFailureValue
	}
	if commandFlags.Changed(encodingFlagNameConstant) {
		encodingValue, _ := commandFlags.GetString(encodingFlagNameConstant)
		executionOptions.EncodingName = encodingValue
	}
	if commandFlags.Changed(strictDecodeFlagNameConstant) {
		strictDecodeValue, _ := commandFlags.GetBool(strictDecodeFlagNameConstant)
		if strictDecodeValue {
			executionOptions.DecodeErrorPolicy = execproc.DecodeErrorPolicyStrict
		} else {
			executionOptions.DecodeErrorPolicy = execproc.DecodeErrorPolicyReplace
		}
	}

	environmentAssignments, _ := commandFlags.GetStringArray(environmentFlagNameConstant)
	environmentVariables, environmentError := parseEnvironmentAssignments(environmentAssignments)
	if environmentError != nil {
		return execproc.ExecutionOptions{}, environmentError
	}
	executionOptions.EnvironmentVariables = environmentVariables

	return executionOptions, nil
}
