package suites

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	registryFileReadErrorTemplateConstant  = "unable to read registry file %s: %w"
	registryFileParseErrorTemplateConstant = "unable to parse registry file %s: %w"
)

// LoadRegistryFile reads a standalone YAML suite registry file and returns
// the contained suite catalog. The file uses the same schema as the `suites`
// section of the application configuration.
func LoadRegistryFile(registryFilePath string) (CommandConfiguration, error) {
	registryContent, readError := os.ReadFile(registryFilePath)
	if readError != nil {
		return CommandConfiguration{}, fmt.Errorf(registryFileReadErrorTemplateConstant, registryFilePath, readError)
	}

	var configuration CommandConfiguration
	if parseError := yaml.Unmarshal(registryContent, &configuration); parseError != nil {
		return CommandConfiguration{}, fmt.Errorf(registryFileParseErrorTemplateConstant, registryFilePath, parseError)
	}

	return configuration.Sanitize(), nil
}
