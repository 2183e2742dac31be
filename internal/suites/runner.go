package suites

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tyemirov/suiterun/internal/execshell"
)

const (
	processExecutorMissingMessageConstant = "suite runner process executor not configured"
	probeSkipMessageConstant              = "suite runtime dependency unavailable; skipping"
	suitePassedMessageConstant            = "suite passed"
	suiteFailedMessageConstant            = "suite failed"
	suiteNameFieldConstant                = "suite"
	probeExecutableFieldConstant          = "probe_executable"
	suiteExitCodeFieldConstant            = "exit_code"
	suiteCauseFieldConstant               = "cause"
)

// ErrProcessExecutorNotConfigured indicates the process executor dependency was missing.
var ErrProcessExecutorNotConfigured = errors.New(processExecutorMissingMessageConstant)

// ProcessExecutor runs one child process and reports its terminal status.
type ProcessExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// RunnerDependencies enumerates the collaborators required by the suite runner.
type RunnerDependencies struct {
	ProcessExecutor ProcessExecutor
	Logger          *zap.Logger
	SuiteOutput     io.Writer
	SuiteErrors     io.Writer
}

// SuiteRunner executes exactly one suite descriptor and classifies the result
// into exactly one suite outcome. Probe failures, spawn failures, non-zero
// exits, and timeouts are all converted into outcomes at this boundary;
// nothing propagates past the runner as an error.
type SuiteRunner struct {
	processExecutor ProcessExecutor
	logger          *zap.Logger
	suiteOutput     io.Writer
	suiteErrors     io.Writer
}

// NewSuiteRunner constructs a SuiteRunner from the provided dependencies.
func NewSuiteRunner(dependencies RunnerDependencies) (*SuiteRunner, error) {
	if dependencies.ProcessExecutor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SuiteRunner{
		processExecutor: dependencies.ProcessExecutor,
		logger:          logger,
		suiteOutput:     dependencies.SuiteOutput,
		suiteErrors:     dependencies.SuiteErrors,
	}, nil
}

// Run executes one descriptor: the availability probe first when present,
// then the suite invocation with inherited output streams. Classification
// depends only on the terminal exit status, never on parsed output.
func (runner *SuiteRunner) Run(executionContext context.Context, descriptor SuiteDescriptor) SuiteOutcome {
	startTime := time.Now()

	if descriptor.AvailabilityProbe != nil && !descriptor.AvailabilityProbe.IsZero() {
		if !runner.probeSucceeds(executionContext, descriptor) {
			return SuiteOutcome{
				SuiteName: descriptor.Name,
				Status:    SuiteStatusSkipped,
				Cause:     CauseMissingTool,
				Duration:  time.Since(startTime),
			}
		}
	}

	outcome := runner.invoke(executionContext, descriptor)
	outcome.Duration = time.Since(startTime)

	switch outcome.Status {
	case SuiteStatusPassed:
		runner.logger.Info(suitePassedMessageConstant, zap.String(suiteNameFieldConstant, descriptor.Name))
	case SuiteStatusFailed:
		runner.logger.Warn(suiteFailedMessageConstant,
			zap.String(suiteNameFieldConstant, descriptor.Name),
			zap.Int(suiteExitCodeFieldConstant, outcome.ExitCode),
			zap.String(suiteCauseFieldConstant, string(outcome.Cause)),
		)
	}

	return outcome
}

// probeSucceeds runs the availability probe with captured output so that
// missing-tool diagnostics do not pollute the suite stream. Any probe
// failure, including an unspawnable probe executable, counts as "tool not
// installed".
func (runner *SuiteRunner) probeSucceeds(executionContext context.Context, descriptor SuiteDescriptor) bool {
	probeCommand := execshell.ShellCommand{
		Executable: descriptor.AvailabilityProbe.Executable,
		Details: execshell.CommandDetails{
			Arguments:            descriptor.AvailabilityProbe.Arguments,
			WorkingDirectory:     descriptor.AvailabilityProbe.WorkingDirectory,
			EnvironmentVariables: descriptor.AvailabilityProbe.Environment,
		},
	}

	_, probeError := runner.processExecutor.Execute(executionContext, probeCommand)
	if probeError == nil {
		return true
	}

	runner.logger.Info(probeSkipMessageConstant,
		zap.String(suiteNameFieldConstant, descriptor.Name),
		zap.String(probeExecutableFieldConstant, descriptor.AvailabilityProbe.Executable),
	)
	return false
}

func (runner *SuiteRunner) invoke(executionContext context.Context, descriptor SuiteDescriptor) SuiteOutcome {
	invocationContext := executionContext
	if descriptor.Timeout > 0 {
		timeoutContext, cancelFunction := context.WithTimeout(executionContext, descriptor.Timeout)
		defer cancelFunction()
		invocationContext = timeoutContext
	}

	invocationCommand := execshell.ShellCommand{
		Executable: descriptor.Invocation.Executable,
		Details: execshell.CommandDetails{
			Arguments:            descriptor.Invocation.Arguments,
			WorkingDirectory:     descriptor.Invocation.WorkingDirectory,
			EnvironmentVariables: descriptor.Invocation.Environment,
			StandardOutput:       runner.suiteOutput,
			StandardError:        runner.suiteErrors,
		},
	}

	executionResult, executionError := runner.processExecutor.Execute(invocationContext, invocationCommand)
	if executionError == nil {
		return SuiteOutcome{SuiteName: descriptor.Name, Status: SuiteStatusPassed, ExitCode: executionResult.ExitCode}
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		return SuiteOutcome{
			SuiteName: descriptor.Name,
			Status:    SuiteStatusFailed,
			ExitCode:  failedError.Result.ExitCode,
			Cause:     CauseSuiteFailure,
		}
	}

	if errors.Is(executionError, context.DeadlineExceeded) && executionContext.Err() == nil {
		return SuiteOutcome{
			SuiteName: descriptor.Name,
			Status:    SuiteStatusFailed,
			ExitCode:  -1,
			Cause:     CauseTimeout,
			Detail:    executionError.Error(),
		}
	}

	if errors.Is(executionError, context.Canceled) || executionContext.Err() != nil {
		return SuiteOutcome{
			SuiteName: descriptor.Name,
			Status:    SuiteStatusFailed,
			ExitCode:  -1,
			Cause:     CauseInterrupted,
			Detail:    executionError.Error(),
		}
	}

	return SuiteOutcome{
		SuiteName: descriptor.Name,
		Status:    SuiteStatusFailed,
		ExitCode:  -1,
		Cause:     CauseSpawnFailure,
		Detail:    executionError.Error(),
	}
}
