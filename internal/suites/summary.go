package suites

import "time"

// RunSummary aggregates per-suite outcomes for one orchestrator run. It is
// built incrementally by the orchestrator, which is its only writer, and is
// read-only once the run finishes. The counter invariant
// Total == Passed + Failed + Skipped holds after every recorded outcome.
type RunSummary struct {
	StartTime   time.Time
	FinishTime  time.Time
	Outcomes    []SuiteOutcome
	Total       int
	Passed      int
	Failed      int
	Skipped     int
	Interrupted bool
}

func (summary *RunSummary) record(outcome SuiteOutcome) {
	summary.Outcomes = append(summary.Outcomes, outcome)
	summary.Total++

	switch outcome.Status {
	case SuiteStatusPassed:
		summary.Passed++
	case SuiteStatusFailed:
		summary.Failed++
	case SuiteStatusSkipped:
		summary.Skipped++
	}
}

// Succeeded reports whether the run completed with no failing suite. An
// all-skipped run succeeds: missing optional tooling never blocks a
// pipeline. An interrupted run never succeeds, because it produced no
// complete verdict.
func (summary RunSummary) Succeeded() bool {
	return !summary.Interrupted && summary.Failed == 0
}
