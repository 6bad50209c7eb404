package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/launchpath/cmdkit/internal/execproc"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s in %s"
	commandFailedExitCodeMessageTemplateConstant   = "%s failed with exit code %d"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant            = ": %s"
	unknownFailureMessageConstant                  = "unknown error"
	emptyStringConstant                            = ""
)

// CommandEventFormatter builds human-readable messages for process lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execproc.CommandSpecification) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, command.String())
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execproc.CommandSpecification, result execproc.CommandResult) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, command.String(), result.ExecutionTime)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandEventFormatter) BuildFailureMessage(command execproc.CommandSpecification, result execproc.CommandResult) string {
	baseMessage := fmt.Sprintf(commandFailedExitCodeMessageTemplateConstant, command.String(), result.ExitCode)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	if len(standardErrorSuffix) == 0 {
		return baseMessage
	}
	return baseMessage + standardErrorSuffix
}

// BuildExecutionFailureMessage formats the message describing a failure that produced no result.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execproc.CommandSpecification, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, command.String(), failureMessage)
}

func (formatter CommandEventFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

// ConsoleCommandEventLogger renders process lifecycle events through a zap
// logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execproc.CommandEventObserver by logging start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execproc.CommandSpecification) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execproc.CommandEventObserver by logging completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execproc.CommandSpecification, result execproc.CommandResult) {
	if eventLogger == nil {
		return
	}
	if result.Success {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command, result))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execproc.CommandEventObserver by logging failures without results.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execproc.CommandSpecification, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
