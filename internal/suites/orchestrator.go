package suites

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	registryMissingMessageConstant     = "orchestrator registry not configured"
	suiteRunnerMissingMessageConstant  = "orchestrator suite runner not configured"
	runStartMessageConstant            = "suite run starting"
	runFinishMessageConstant           = "suite run finished"
	runInterruptedMessageConstant      = "suite run interrupted"
	suiteCountFieldConstant            = "suite_count"
	passedCountFieldConstant           = "passed"
	failedCountFieldConstant           = "failed"
	skippedCountFieldConstant          = "skipped"
	interruptedSuiteNameFieldConstant  = "suite"
)

var (
	// ErrRegistryNotConfigured indicates the registry dependency was missing.
	ErrRegistryNotConfigured = errors.New(registryMissingMessageConstant)
	// ErrSuiteRunnerNotConfigured indicates the suite runner dependency was missing.
	ErrSuiteRunnerNotConfigured = errors.New(suiteRunnerMissingMessageConstant)
)

// SuiteExecutor turns one descriptor into one outcome.
type SuiteExecutor interface {
	Run(executionContext context.Context, descriptor SuiteDescriptor) SuiteOutcome
}

// OrchestratorDependencies enumerates the collaborators required to drive a run.
type OrchestratorDependencies struct {
	Registry *Registry
	Runner   SuiteExecutor
	Reporter Reporter
	Logger   *zap.Logger
	Clock    func() time.Time
}

// Orchestrator drives the full registry to completion exactly once per
// invocation: every suite runs in declared order regardless of earlier
// outcomes, outcomes fold into the run summary, and the summary yields the
// final verdict.
type Orchestrator struct {
	registry *Registry
	runner   SuiteExecutor
	reporter Reporter
	logger   *zap.Logger
	clock    func() time.Time
}

// NewOrchestrator constructs an Orchestrator from the provided dependencies.
func NewOrchestrator(dependencies OrchestratorDependencies) (*Orchestrator, error) {
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	if dependencies.Runner == nil {
		return nil, ErrSuiteRunnerNotConfigured
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Orchestrator{
		registry: dependencies.Registry,
		runner:   dependencies.Runner,
		reporter: reporter,
		logger:   logger,
		clock:    clock,
	}, nil
}

// Run executes every registered suite in declared order and returns the
// finalized summary. A failing suite never stops the loop; only an external
// interrupt does, in which case already-recorded outcomes are preserved and
// the summary is marked interrupted.
func (orchestrator *Orchestrator) Run(executionContext context.Context) RunSummary {
	summary := RunSummary{StartTime: orchestrator.clock()}

	orchestrator.logger.Info(runStartMessageConstant, zap.Int(suiteCountFieldConstant, orchestrator.registry.Size()))
	orchestrator.reporter.RunStarted(summary.StartTime, orchestrator.registry.Size())

	for _, descriptor := range orchestrator.registry.Descriptors() {
		if executionContext.Err() != nil {
			summary.Interrupted = true
			orchestrator.logger.Warn(runInterruptedMessageConstant, zap.String(interruptedSuiteNameFieldConstant, descriptor.Name))
			orchestrator.reporter.RunInterrupted(descriptor.Name)
			break
		}

		orchestrator.reporter.SuiteStarted(descriptor)
		outcome := orchestrator.runner.Run(executionContext, descriptor)

		if executionContext.Err() != nil {
			summary.Interrupted = true
			orchestrator.logger.Warn(runInterruptedMessageConstant, zap.String(interruptedSuiteNameFieldConstant, descriptor.Name))
			orchestrator.reporter.RunInterrupted(descriptor.Name)
			break
		}

		summary.record(outcome)
		orchestrator.reporter.SuiteFinished(outcome)
	}

	summary.FinishTime = orchestrator.clock()

	orchestrator.logger.Info(runFinishMessageConstant,
		zap.Int(passedCountFieldConstant, summary.Passed),
		zap.Int(failedCountFieldConstant, summary.Failed),
		zap.Int(skippedCountFieldConstant, summary.Skipped),
	)
	orchestrator.reporter.RunFinished(summary)

	return summary
}
