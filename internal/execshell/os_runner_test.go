package execshell_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/suiterun/internal/execshell"
)

const (
	testShellExecutableConstant       = "sh"
	testShellCommandFlagConstant      = "-c"
	testEchoScriptConstant            = "echo ready"
	testEchoExpectedOutputConstant    = "ready\n"
	testExitScriptConstant            = "exit 7"
	testSleepScriptConstant           = "sleep 5"
	testMissingExecutableNameConstant = "suiterun-nonexistent-binary"
	testEnvironmentScriptConstant     = "printf '%s' \"$SUITERUN_TEST_VALUE\""
	testEnvironmentKeyConstant        = "SUITERUN_TEST_VALUE"
	testEnvironmentValueConstant      = "from-environment"
)

func TestOSCommandRunnerCapturesOutputAndExitCode(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()

	result, runError := commandRunner.Run(context.Background(), execshell.ShellCommand{
		Executable: testShellExecutableConstant,
		Details:    execshell.CommandDetails{Arguments: []string{testShellCommandFlagConstant, testEchoScriptConstant}},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, result.ExitCode)
	require.Equal(testInstance, testEchoExpectedOutputConstant, result.StandardOutput)
}

func TestOSCommandRunnerReportsNonZeroExitWithoutError(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()

	result, runError := commandRunner.Run(context.Background(), execshell.ShellCommand{
		Executable: testShellExecutableConstant,
		Details:    execshell.CommandDetails{Arguments: []string{testShellCommandFlagConstant, testExitScriptConstant}},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 7, result.ExitCode)
}

func TestOSCommandRunnerStreamsToConfiguredWriters(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()
	outputBuffer := &bytes.Buffer{}

	result, runError := commandRunner.Run(context.Background(), execshell.ShellCommand{
		Executable: testShellExecutableConstant,
		Details: execshell.CommandDetails{
			Arguments:      []string{testShellCommandFlagConstant, testEchoScriptConstant},
			StandardOutput: outputBuffer,
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, testEchoExpectedOutputConstant, outputBuffer.String())
	require.Empty(testInstance, result.StandardOutput)
}

func TestOSCommandRunnerAppliesEnvironmentVariables(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()

	result, runError := commandRunner.Run(context.Background(), execshell.ShellCommand{
		Executable: testShellExecutableConstant,
		Details: execshell.CommandDetails{
			Arguments:            []string{testShellCommandFlagConstant, testEnvironmentScriptConstant},
			EnvironmentVariables: map[string]string{testEnvironmentKeyConstant: testEnvironmentValueConstant},
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, testEnvironmentValueConstant, result.StandardOutput)
}

func TestOSCommandRunnerSurfacesStartFailures(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()

	_, runError := commandRunner.Run(context.Background(), execshell.ShellCommand{Executable: testMissingExecutableNameConstant})
	require.Error(testInstance, runError)
}

func TestOSCommandRunnerSurfacesContextExpiry(testInstance *testing.T) {
	commandRunner := execshell.NewOSCommandRunner()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancelFunction()

	_, runError := commandRunner.Run(executionContext, execshell.ShellCommand{
		Executable: testShellExecutableConstant,
		Details:    execshell.CommandDetails{Arguments: []string{testShellCommandFlagConstant, testSleepScriptConstant}},
	})
	require.ErrorIs(testInstance, runError, context.DeadlineExceeded)
}
