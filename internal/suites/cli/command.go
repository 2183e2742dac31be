package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/suiterun/internal/execshell"
	"github.com/tyemirov/suiterun/internal/suites"
	"github.com/tyemirov/suiterun/internal/utils"
	flagutils "github.com/tyemirov/suiterun/internal/utils/flags"
)

const (
	commandUseConstant                   = "run"
	commandShortDescriptionConstant      = "Run every registered test suite in order"
	commandLongDescriptionConstant       = "run executes every registered test suite sequentially, skips suites whose runtime dependency is absent, prints a per-suite status line and a final summary, and fails when any suite failed."
	registryFlagNameConstant             = "registry"
	registryFlagUsageConstant            = "Path to a standalone YAML suite registry file (overrides configured suites)."
	runInterruptedMessageConstant        = "suite run interrupted before completion"
	suitesFailedMessageTemplateConstant  = "%d test suite(s) failed"
)

// ErrRunInterrupted indicates an external signal stopped the run before completion.
var ErrRunInterrupted = errors.New(runInterruptedMessageConstant)

// SuitesFailedError indicates that at least one suite failed.
type SuitesFailedError struct {
	FailedCount int
}

// Error implements the error interface.
func (errorDetails SuitesFailedError) Error() string {
	return fmt.Sprintf(suitesFailedMessageTemplateConstant, errorDetails.FailedCount)
}

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() suites.CommandConfiguration
	CommandRunner                execshell.CommandRunner
	Reporter                     suites.Reporter
	SignalNotifier               func(parentContext context.Context) (context.Context, context.CancelFunc)
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.Run,
	}

	command.Flags().String(registryFlagNameConstant, "", registryFlagUsageConstant)

	return command, nil
}

// Run drives the configured registry to completion and maps the summary to
// the command verdict: nil when no suite failed, ErrRunInterrupted on an
// external signal, SuitesFailedError otherwise.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.resolveSuiteConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	descriptors, descriptorsError := configuration.Descriptors()
	if descriptorsError != nil {
		return descriptorsError
	}

	registry, registryError := suites.NewRegistry(descriptors)
	if registryError != nil {
		return registryError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	processExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	suiteRunner, runnerError := suites.NewSuiteRunner(suites.RunnerDependencies{
		ProcessExecutor: processExecutor,
		Logger:          logger,
		SuiteOutput:     utils.NewFlushingWriter(command.OutOrStdout()),
		SuiteErrors:     utils.NewFlushingWriter(command.ErrOrStderr()),
	})
	if runnerError != nil {
		return runnerError
	}

	reporter := builder.Reporter
	if reporter == nil {
		reporter = suites.NewConsoleReporter(command.OutOrStdout())
	}

	orchestrator, orchestratorError := suites.NewOrchestrator(suites.OrchestratorDependencies{
		Registry: registry,
		Runner:   suiteRunner,
		Reporter: reporter,
		Logger:   logger,
	})
	if orchestratorError != nil {
		return orchestratorError
	}

	executionContext, stopNotifications := builder.notifyContext(command.Context())
	defer stopNotifications()

	summary := orchestrator.Run(executionContext)

	if summary.Interrupted {
		return ErrRunInterrupted
	}
	if summary.Failed > 0 {
		return SuitesFailedError{FailedCount: summary.Failed}
	}
	return nil
}

func (builder *CommandBuilder) resolveSuiteConfiguration(command *cobra.Command) (suites.CommandConfiguration, error) {
	registryFilePath := ""
	if command != nil {
		if flagValue, flagChanged, flagError := flagutils.StringFlag(command, registryFlagNameConstant); flagError == nil && flagChanged {
			registryFilePath = strings.TrimSpace(flagValue)
		}
	}

	if len(registryFilePath) > 0 {
		return suites.LoadRegistryFile(registryFilePath)
	}

	if builder.ConfigurationProvider == nil {
		return suites.DefaultCommandConfiguration(), nil
	}
	return builder.ConfigurationProvider().Sanitize(), nil
}

func (builder *CommandBuilder) notifyContext(parentContext context.Context) (context.Context, context.CancelFunc) {
	if parentContext == nil {
		parentContext = context.Background()
	}
	if builder.SignalNotifier != nil {
		return builder.SignalNotifier(parentContext)
	}
	return signal.NotifyContext(parentContext, os.Interrupt, syscall.SIGTERM)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
