package suites

import (
	"fmt"
	"io"
	"time"
)

const (
	runHeaderTemplateConstant         = "=== run: %d suite(s), started %s ===\n"
	suiteHeaderTemplateConstant       = "=== suite: %s ===\n"
	suiteStatusTemplateConstant       = "--- suite: %s result: %s exit_code: %d\n"
	suiteStatusCauseTemplateConstant  = "--- suite: %s result: %s exit_code: %d cause: %s\n"
	suiteSkippedTemplateConstant      = "--- suite: %s result: %s reason: %s\n"
	runInterruptedTemplateConstant    = "!!! interrupted during suite: %s\n"
	summaryHeaderLineConstant         = "=== summary ===\n"
	summaryStartedTemplateConstant    = "started: %s\n"
	summaryFinishedTemplateConstant   = "finished: %s\n"
	summaryCountersTemplateConstant   = "total: %d passed: %d failed: %d skipped: %d\n"
	summaryResultTemplateConstant     = "result: %s\n"
	summaryResultPassedLabelConstant  = "PASSED"
	summaryResultFailedLabelConstant  = "FAILED"
	summaryResultInterruptedConstant  = "INTERRUPTED"
	reporterTimestampLayoutConstant   = time.RFC3339
)

// Reporter receives run lifecycle notifications.
type Reporter interface {
	RunStarted(startTime time.Time, suiteCount int)
	SuiteStarted(descriptor SuiteDescriptor)
	SuiteFinished(outcome SuiteOutcome)
	RunInterrupted(suiteName string)
	RunFinished(summary RunSummary)
}

// NopReporter discards all notifications.
type NopReporter struct{}

// RunStarted implements Reporter.
func (NopReporter) RunStarted(time.Time, int) {}

// SuiteStarted implements Reporter.
func (NopReporter) SuiteStarted(SuiteDescriptor) {}

// SuiteFinished implements Reporter.
func (NopReporter) SuiteFinished(SuiteOutcome) {}

// RunInterrupted implements Reporter.
func (NopReporter) RunInterrupted(string) {}

// RunFinished implements Reporter.
func (NopReporter) RunFinished(RunSummary) {}

// ConsoleReporter renders the operator-facing output stream: a labeled
// section header per suite, a per-suite status line, and a final summary
// block. The field labels are a stability contract consumed by CI log
// scrapers and must not change between versions.
type ConsoleReporter struct {
	output io.Writer
}

// NewConsoleReporter constructs a ConsoleReporter writing to the provided stream.
func NewConsoleReporter(output io.Writer) *ConsoleReporter {
	return &ConsoleReporter{output: output}
}

// RunStarted announces the run and its registered suite count.
func (reporter *ConsoleReporter) RunStarted(startTime time.Time, suiteCount int) {
	fmt.Fprintf(reporter.output, runHeaderTemplateConstant, suiteCount, startTime.Format(reporterTimestampLayoutConstant))
}

// SuiteStarted prints the labeled section header preceding the suite's own output.
func (reporter *ConsoleReporter) SuiteStarted(descriptor SuiteDescriptor) {
	fmt.Fprintf(reporter.output, suiteHeaderTemplateConstant, descriptor.Name)
}

// SuiteFinished prints the per-suite status line.
func (reporter *ConsoleReporter) SuiteFinished(outcome SuiteOutcome) {
	switch {
	case outcome.Status == SuiteStatusSkipped:
		fmt.Fprintf(reporter.output, suiteSkippedTemplateConstant, outcome.SuiteName, outcome.Status, outcome.Cause)
	case outcome.Cause == CauseNone || outcome.Cause == CauseSuiteFailure:
		fmt.Fprintf(reporter.output, suiteStatusTemplateConstant, outcome.SuiteName, outcome.Status, outcome.ExitCode)
	default:
		fmt.Fprintf(reporter.output, suiteStatusCauseTemplateConstant, outcome.SuiteName, outcome.Status, outcome.ExitCode, outcome.Cause)
	}
}

// RunInterrupted marks the point at which an external interrupt stopped the run.
func (reporter *ConsoleReporter) RunInterrupted(suiteName string) {
	fmt.Fprintf(reporter.output, runInterruptedTemplateConstant, suiteName)
}

// RunFinished prints the labeled summary block.
func (reporter *ConsoleReporter) RunFinished(summary RunSummary) {
	fmt.Fprint(reporter.output, summaryHeaderLineConstant)
	fmt.Fprintf(reporter.output, summaryStartedTemplateConstant, summary.StartTime.Format(reporterTimestampLayoutConstant))
	fmt.Fprintf(reporter.output, summaryFinishedTemplateConstant, summary.FinishTime.Format(reporterTimestampLayoutConstant))
	fmt.Fprintf(reporter.output, summaryCountersTemplateConstant, summary.Total, summary.Passed, summary.Failed, summary.Skipped)
	fmt.Fprintf(reporter.output, summaryResultTemplateConstant, summaryResultLabel(summary))
}

func summaryResultLabel(summary RunSummary) string {
	if summary.Interrupted {
		return summaryResultInterruptedConstant
	}
	if summary.Failed > 0 {
		return summaryResultFailedLabelConstant
	}
	return summaryResultPassedLabelConstant
}
