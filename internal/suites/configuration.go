package suites

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	emptySuiteCommandMessageTemplateConstant = "suite %q has an empty command"
	negativeTimeoutMessageTemplateConstant   = "suite %q has a negative timeout"
	configurationSuiteNameMissingConstant    = "suite configuration entry has no name"
)

// ErrConfiguredSuiteNameMissing indicates a configuration entry without a name.
var ErrConfiguredSuiteNameMissing = errors.New(configurationSuiteNameMissingConstant)

// EmptySuiteCommandError indicates a configuration entry with no command words.
type EmptySuiteCommandError struct {
	SuiteName string
}

// Error implements the error interface.
func (errorDetails EmptySuiteCommandError) Error() string {
	return fmt.Sprintf(emptySuiteCommandMessageTemplateConstant, errorDetails.SuiteName)
}

// NegativeTimeoutError indicates a configuration entry with a negative timeout.
type NegativeTimeoutError struct {
	SuiteName string
}

// Error implements the error interface.
func (errorDetails NegativeTimeoutError) Error() string {
	return fmt.Sprintf(negativeTimeoutMessageTemplateConstant, errorDetails.SuiteName)
}

// SuiteConfiguration captures one configured suite entry. The first command
// word is the executable; the probe follows the same convention. A probe is
// optional: suites without one are always considered available.
type SuiteConfiguration struct {
	Name             string            `mapstructure:"name" yaml:"name"`
	Command          []string          `mapstructure:"command" yaml:"command"`
	Probe            []string          `mapstructure:"probe" yaml:"probe"`
	WorkingDirectory string            `mapstructure:"working_directory" yaml:"working_directory"`
	Environment      map[string]string `mapstructure:"environment" yaml:"environment"`
	TimeoutSeconds   int               `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// CommandConfiguration captures the configured suite catalog for the run command.
type CommandConfiguration struct {
	Suites []SuiteConfiguration `mapstructure:"suites" yaml:"suites"`
}

// DefaultCommandConfiguration returns empty defaults for the run command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// Sanitize trims textual configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Suites = make([]SuiteConfiguration, len(configuration.Suites))
	for suiteIndex, suiteConfiguration := range configuration.Suites {
		suiteConfiguration.Name = strings.TrimSpace(suiteConfiguration.Name)
		suiteConfiguration.WorkingDirectory = strings.TrimSpace(suiteConfiguration.WorkingDirectory)
		sanitized.Suites[suiteIndex] = suiteConfiguration
	}
	return sanitized
}

// Descriptors converts the configured suite entries into validated registry
// descriptors, preserving declared order.
func (configuration CommandConfiguration) Descriptors() ([]SuiteDescriptor, error) {
	descriptors := make([]SuiteDescriptor, 0, len(configuration.Suites))

	for _, suiteConfiguration := range configuration.Suites {
		trimmedName := strings.TrimSpace(suiteConfiguration.Name)
		if len(trimmedName) == 0 {
			return nil, ErrConfiguredSuiteNameMissing
		}
		if len(suiteConfiguration.Command) == 0 {
			return nil, EmptySuiteCommandError{SuiteName: trimmedName}
		}
		if suiteConfiguration.TimeoutSeconds < 0 {
			return nil, NegativeTimeoutError{SuiteName: trimmedName}
		}

		descriptor := SuiteDescriptor{
			Name: trimmedName,
			Invocation: CommandSpec{
				Executable:       suiteConfiguration.Command[0],
				Arguments:        suiteConfiguration.Command[1:],
				WorkingDirectory: suiteConfiguration.WorkingDirectory,
				Environment:      suiteConfiguration.Environment,
			},
			Timeout: time.Duration(suiteConfiguration.TimeoutSeconds) * time.Second,
		}

		if len(suiteConfiguration.Probe) > 0 {
			descriptor.AvailabilityProbe = &CommandSpec{
				Executable:       suiteConfiguration.Probe[0],
				Arguments:        suiteConfiguration.Probe[1:],
				WorkingDirectory: suiteConfiguration.WorkingDirectory,
				Environment:      suiteConfiguration.Environment,
			}
		}

		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}
