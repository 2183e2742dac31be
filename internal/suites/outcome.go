package suites

import "time"

// SuiteStatus classifies the result of attempting to run one suite.
type SuiteStatus string

// Supported suite statuses.
const (
	SuiteStatusPassed  SuiteStatus = "passed"
	SuiteStatusFailed  SuiteStatus = "failed"
	SuiteStatusSkipped SuiteStatus = "skipped"
)

// OutcomeCause distinguishes why a suite was classified as failed or skipped.
type OutcomeCause string

// Supported outcome causes. The empty cause accompanies passed suites and
// ordinary non-zero exits carry CauseSuiteFailure.
const (
	CauseNone         OutcomeCause = ""
	CauseSuiteFailure OutcomeCause = "suite_failure"
	CauseSpawnFailure OutcomeCause = "spawn_failure"
	CauseTimeout      OutcomeCause = "timeout"
	CauseMissingTool  OutcomeCause = "missing_tool"
	CauseInterrupted  OutcomeCause = "interrupted"
)

// SuiteOutcome is the classified result of attempting one suite. Exactly one
// outcome exists per registered suite per run; outcomes are never mutated
// after creation.
type SuiteOutcome struct {
	SuiteName string
	Status    SuiteStatus
	ExitCode  int
	Cause     OutcomeCause
	Detail    string
	Duration  time.Duration
}
