package suites

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	suiteNameMissingMessageConstant               = "suite name must be provided"
	suiteInvocationMissingMessageTemplateConstant = "suite %q has no invocation executable"
	duplicateSuiteNameMessageTemplateConstant     = "duplicate suite name %q"
)

// ErrSuiteNameMissing indicates a descriptor without a name.
var ErrSuiteNameMissing = errors.New(suiteNameMissingMessageConstant)

// SuiteInvocationMissingError indicates a descriptor without an invocation executable.
type SuiteInvocationMissingError struct {
	SuiteName string
}

// Error implements the error interface.
func (errorDetails SuiteInvocationMissingError) Error() string {
	return fmt.Sprintf(suiteInvocationMissingMessageTemplateConstant, errorDetails.SuiteName)
}

// DuplicateSuiteNameError indicates two descriptors sharing one name.
type DuplicateSuiteNameError struct {
	SuiteName string
}

// Error implements the error interface.
func (errorDetails DuplicateSuiteNameError) Error() string {
	return fmt.Sprintf(duplicateSuiteNameMessageTemplateConstant, errorDetails.SuiteName)
}

// CommandSpec describes how to start one child process.
type CommandSpec struct {
	Executable       string
	Arguments        []string
	WorkingDirectory string
	Environment      map[string]string
}

// IsZero reports whether the spec names no executable.
func (spec CommandSpec) IsZero() bool {
	return len(strings.TrimSpace(spec.Executable)) == 0
}

// SuiteDescriptor is the static metadata for one test suite: how to check its
// availability and how to invoke it. Descriptors are immutable once the
// registry is constructed.
type SuiteDescriptor struct {
	Name              string
	Invocation        CommandSpec
	AvailabilityProbe *CommandSpec
	Timeout           time.Duration
}

// Registry holds the fixed, ordered catalog of suites to run. Suites execute
// in declared order; later suites may rely on environment state left behind
// by earlier ones.
type Registry struct {
	descriptors []SuiteDescriptor
}

// NewRegistry validates the provided descriptors and freezes their order.
func NewRegistry(descriptors []SuiteDescriptor) (*Registry, error) {
	seenNames := make(map[string]struct{}, len(descriptors))
	frozenDescriptors := make([]SuiteDescriptor, 0, len(descriptors))

	for _, descriptor := range descriptors {
		trimmedName := strings.TrimSpace(descriptor.Name)
		if len(trimmedName) == 0 {
			return nil, ErrSuiteNameMissing
		}
		if descriptor.Invocation.IsZero() {
			return nil, SuiteInvocationMissingError{SuiteName: trimmedName}
		}
		if _, exists := seenNames[trimmedName]; exists {
			return nil, DuplicateSuiteNameError{SuiteName: trimmedName}
		}
		seenNames[trimmedName] = struct{}{}

		descriptor.Name = trimmedName
		frozenDescriptors = append(frozenDescriptors, descriptor)
	}

	return &Registry{descriptors: frozenDescriptors}, nil
}

// Descriptors returns the ordered sequence of suite descriptors.
func (registry *Registry) Descriptors() []SuiteDescriptor {
	copied := make([]SuiteDescriptor, len(registry.descriptors))
	copy(copied, registry.descriptors)
	return copied
}

// Size reports the number of registered suites.
func (registry *Registry) Size() int {
	return len(registry.descriptors)
}
