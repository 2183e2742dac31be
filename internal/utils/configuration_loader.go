package utils

import (
	"bytes"
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const environmentKeyReplacementSourceConstant = "."
const environmentKeyReplacementTargetConstant = "_"

// LoadedConfiguration describes metadata about a completed configuration load.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// ConfigurationLoader merges configuration values from defaults, an optional
// embedded configuration, configuration files on the search path, and
// prefixed environment variables, in ascending order of precedence.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// NewConfigurationLoader constructs a ConfigurationLoader instance.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       searchPaths,
	}
}

// SetEmbeddedConfiguration registers embedded configuration content applied
// beneath any configuration file.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationContent []byte, configurationType string) {
	loader.embeddedConfiguration = configurationContent
	loader.embeddedConfigurationType = configurationType
}

// LoadConfiguration resolves configuration values into the provided target.
// An explicit file path takes precedence over the search path; a missing
// configuration file is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(loader.embeddedConfiguration) > 0 {
		embeddedType := loader.embeddedConfigurationType
		if len(embeddedType) == 0 {
			embeddedType = loader.configurationType
		}
		viperInstance.SetConfigType(embeddedType)
		if readError := viperInstance.ReadConfig(bytes.NewReader(loader.embeddedConfiguration)); readError != nil {
			return LoadedConfiguration{}, readError
		}
		viperInstance.SetConfigType(loader.configurationType)
	}

	trimmedExplicitPath := strings.TrimSpace(explicitFilePath)
	if len(trimmedExplicitPath) > 0 {
		viperInstance.SetConfigFile(trimmedExplicitPath)
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			return LoadedConfiguration{}, mergeError
		}
	} else if len(loader.searchPaths) > 0 {
		for _, searchPath := range loader.searchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(mergeError, &configFileNotFoundError) {
				return LoadedConfiguration{}, mergeError
			}
		}
	}

	if len(strings.TrimSpace(loader.environmentPrefix)) > 0 {
		viperInstance.SetEnvPrefix(loader.environmentPrefix)
		viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeyReplacementSourceConstant, environmentKeyReplacementTargetConstant))
		viperInstance.AutomaticEnv()
	}

	if target != nil {
		if unmarshalError := viperInstance.Unmarshal(target); unmarshalError != nil {
			return LoadedConfiguration{}, unmarshalError
		}
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
