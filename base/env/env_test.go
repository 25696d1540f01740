package env

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestEnvNameFallsBackToConfig(t *testing.T) {
	req := require.New(t)
	os.Unsetenv("ENV_NAME")
	viper.Set("env_name", "staging")
	defer viper.Set("env_name", "")

	req.Equal("staging", EnvName())

	os.Setenv("ENV_NAME", "prod")
	defer os.Unsetenv("ENV_NAME")
	req.Equal("prod", EnvName())
}
