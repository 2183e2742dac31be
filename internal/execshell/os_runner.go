package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"sort"
)

const environmentVariableTemplateConstant = "%s=%s"

// OSCommandRunner executes shell commands against the host operating system.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs an OSCommandRunner instance.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the provided command and reports its terminal status. A
// non-zero exit status is reported through the result, not as an error;
// errors are reserved for commands that could not be started or that were
// cut short by context cancellation or expiry.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executableCommand := osexec.CommandContext(executionContext, command.Executable, command.Details.Arguments...)
	executableCommand.Dir = command.Details.WorkingDirectory
	executableCommand.Env = buildEnvironment(command.Details.EnvironmentVariables)

	var capturedOutput bytes.Buffer
	var capturedError bytes.Buffer
	executableCommand.Stdout = resolveStream(command.Details.StandardOutput, &capturedOutput)
	executableCommand.Stderr = resolveStream(command.Details.StandardError, &capturedError)

	if len(command.Details.StandardInput) > 0 {
		executableCommand.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executableCommand.Run()

	executionResult := ExecutionResult{
		StandardOutput: capturedOutput.String(),
		StandardError:  capturedError.String(),
	}

	if runError == nil {
		return executionResult, nil
	}

	if contextError := executionContext.Err(); contextError != nil {
		return executionResult, contextError
	}

	var exitError *osexec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}

	return ExecutionResult{}, runError
}

func resolveStream(configuredWriter io.Writer, captureBuffer *bytes.Buffer) io.Writer {
	if configuredWriter != nil {
		return configuredWriter
	}
	return captureBuffer
}

func buildEnvironment(environmentVariables map[string]string) []string {
	environment := os.Environ()
	if len(environmentVariables) == 0 {
		return environment
	}

	variableNames := make([]string, 0, len(environmentVariables))
	for variableName := range environmentVariables {
		variableNames = append(variableNames, variableName)
	}
	sort.Strings(variableNames)

	for _, variableName := range variableNames {
		environment = append(environment, fmt.Sprintf(environmentVariableTemplateConstant, variableName, environmentVariables[variableName]))
	}

	return environment
}
