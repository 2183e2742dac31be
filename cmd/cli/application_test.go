package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/suiterun/cmd/cli"
)

const (
	embeddedDefaultLogLevelConstant  = "error"
	embeddedDefaultLogFormatConstant = "structured"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration
}

func TestEmbeddedDefaultConfiguration(testInstance *testing.T) {
	embeddedConfigurationContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, embeddedConfigurationContent)

	configuration := decodeEmbeddedApplicationConfiguration(testInstance)
	require.Equal(testInstance, embeddedDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, embeddedDefaultLogFormatConstant, configuration.Common.LogFormat)
	require.Empty(testInstance, configuration.Suites)
}

func TestConfigFileUsedReflectsInitialization(testInstance *testing.T) {
	testInstance.Setenv("SUITERUN_CONFIG_SEARCH_PATH", testInstance.TempDir())

	application := cli.NewApplication()
	require.NoError(testInstance, application.InitializeForCommand("suiterun"))
	require.Empty(testInstance, application.ConfigFileUsed())
}
