package suites_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/suiterun/internal/suites"
)

const (
	registrySubtestNameTemplateConstant   = "%d_%s"
	registryCaseValidDescriptorsConstant  = "valid_descriptors"
	registryCaseMissingNameConstant       = "missing_name"
	registryCaseMissingInvocationConstant = "missing_invocation"
	registryCaseDuplicateNameConstant     = "duplicate_name"
	registryCaseWhitespaceNameConstant    = "whitespace_name_trimmed"
	unitSuiteNameConstant                 = "unit"
	integrationSuiteNameConstant          = "integration"
	endToEndSuiteNameConstant             = "e2e"
	shellExecutableConstant               = "sh"
	paddedSuiteNameConstant               = "  unit  "
)

func validDescriptor(suiteName string) suites.SuiteDescriptor {
	return suites.SuiteDescriptor{
		Name:       suiteName,
		Invocation: suites.CommandSpec{Executable: shellExecutableConstant},
	}
}

func TestNewRegistryValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		descriptors   []suites.SuiteDescriptor
		expectedError error
	}{
		{
			name: registryCaseValidDescriptorsConstant,
			descriptors: []suites.SuiteDescriptor{
				validDescriptor(unitSuiteNameConstant),
				validDescriptor(integrationSuiteNameConstant),
			},
		},
		{
			name:          registryCaseMissingNameConstant,
			descriptors:   []suites.SuiteDescriptor{validDescriptor("")},
			expectedError: suites.ErrSuiteNameMissing,
		},
		{
			name:          registryCaseMissingInvocationConstant,
			descriptors:   []suites.SuiteDescriptor{{Name: unitSuiteNameConstant}},
			expectedError: suites.SuiteInvocationMissingError{SuiteName: unitSuiteNameConstant},
		},
		{
			name: registryCaseDuplicateNameConstant,
			descriptors: []suites.SuiteDescriptor{
				validDescriptor(unitSuiteNameConstant),
				validDescriptor(unitSuiteNameConstant),
			},
			expectedError: suites.DuplicateSuiteNameError{SuiteName: unitSuiteNameConstant},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(registrySubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			registry, registryError := suites.NewRegistry(testCase.descriptors)

			if testCase.expectedError != nil {
				require.Nil(testInstance, registry)
				require.Equal(testInstance, testCase.expectedError, registryError)
				return
			}

			require.NoError(testInstance, registryError)
			require.Equal(testInstance, len(testCase.descriptors), registry.Size())
		})
	}
}

func TestRegistryPreservesDeclaredOrder(testInstance *testing.T) {
	declaredNames := []string{endToEndSuiteNameConstant, unitSuiteNameConstant, integrationSuiteNameConstant}
	descriptors := make([]suites.SuiteDescriptor, 0, len(declaredNames))
	for _, suiteName := range declaredNames {
		descriptors = append(descriptors, validDescriptor(suiteName))
	}

	registry, registryError := suites.NewRegistry(descriptors)
	require.NoError(testInstance, registryError)

	orderedNames := make([]string, 0, registry.Size())
	for _, descriptor := range registry.Descriptors() {
		orderedNames = append(orderedNames, descriptor.Name)
	}
	require.Equal(testInstance, declaredNames, orderedNames)
}

func TestRegistryTrimsSuiteNames(testInstance *testing.T) {
	registry, registryError := suites.NewRegistry([]suites.SuiteDescriptor{validDescriptor(paddedSuiteNameConstant)})
	require.NoError(testInstance, registryError)
	require.Equal(testInstance, unitSuiteNameConstant, registry.Descriptors()[0].Name)
}

func TestRegistryDescriptorsReturnsCopy(testInstance *testing.T) {
	registry, registryError := suites.NewRegistry([]suites.SuiteDescriptor{validDescriptor(unitSuiteNameConstant)})
	require.NoError(testInstance, registryError)

	mutatedView := registry.Descriptors()
	mutatedView[0].Name = integrationSuiteNameConstant

	require.Equal(testInstance, unitSuiteNameConstant, registry.Descriptors()[0].Name)
}
