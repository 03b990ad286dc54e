package execshell

// CommandEventObserver is notified as the shell executor moves through a command's lifecycle.
type CommandEventObserver interface {
	// CommandStarted fires before the command is handed to the runner.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the runner produced a result, regardless of exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the runner could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
