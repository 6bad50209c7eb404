package execproc

// CommandEventObserver receives lifecycle notifications for process execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that execution is beginning.
	CommandStarted(command CommandSpecification)
	// CommandCompleted notifies observers that the child terminated and supplies the result.
	CommandCompleted(command CommandSpecification, result CommandResult)
	// CommandExecutionFailed reports failures that prevented a result from being produced.
	CommandExecutionFailed(command CommandSpecification, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(CommandSpecification) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(CommandSpecification, CommandResult) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(CommandSpecification, error) {}
