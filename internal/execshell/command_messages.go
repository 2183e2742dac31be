package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	successMessageTemplateConstant          = "Completed %s"
	failureMessageTemplateConstant          = "Command %s exited with code %d"
	executionFailureMessageTemplateConstant = "Command %s could not be executed: %v"
)

// CommandMessageFormatter renders human-readable command lifecycle messages.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is about to run.
func (CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf(startedMessageTemplateConstant, formatCommandLine(command))
}

// BuildSuccessMessage describes a command that completed with exit code zero.
func (CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf(successMessageTemplateConstant, formatCommandLine(command))
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return fmt.Sprintf(failureMessageTemplateConstant, formatCommandLine(command), result.ExitCode)
}

// BuildExecutionFailureMessage describes a command that could not be started.
func (CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, executionError error) string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, formatCommandLine(command), executionError)
}

func formatCommandLine(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return command.Executable
	}
	return fmt.Sprintf("%s %s", command.Executable, strings.Join(command.Details.Arguments, " "))
}
