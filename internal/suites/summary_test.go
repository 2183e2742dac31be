package suites_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/suiterun/internal/suites"
)

const (
	summarySubtestNameTemplateConstant = "%d_%s"
	summaryCaseAllPassedConstant       = "all_passed_succeeds"
	summaryCaseFailurePresentConstant  = "failure_present_fails"
	summaryCaseAllSkippedConstant      = "all_skipped_succeeds"
	summaryCaseInterruptedConstant     = "interrupted_never_succeeds"
	summaryCaseEmptyRunConstant        = "empty_run_succeeds"
)

func TestRunSummarySucceeded(testInstance *testing.T) {
	testCases := []struct {
		name            string
		summary         suites.RunSummary
		expectedVerdict bool
	}{
		{
			name:            summaryCaseAllPassedConstant,
			summary:         suites.RunSummary{Total: 2, Passed: 2},
			expectedVerdict: true,
		},
		{
			name:            summaryCaseFailurePresentConstant,
			summary:         suites.RunSummary{Total: 3, Passed: 1, Failed: 1, Skipped: 1},
			expectedVerdict: false,
		},
		{
			name:            summaryCaseAllSkippedConstant,
			summary:         suites.RunSummary{Total: 2, Skipped: 2},
			expectedVerdict: true,
		},
		{
			name:            summaryCaseInterruptedConstant,
			summary:         suites.RunSummary{Total: 1, Passed: 1, Interrupted: true},
			expectedVerdict: false,
		},
		{
			name:            summaryCaseEmptyRunConstant,
			summary:         suites.RunSummary{},
			expectedVerdict: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(summarySubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedVerdict, testCase.summary.Succeeded())
		})
	}
}
