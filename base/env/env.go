package env

import (
	"os"

	"github.com/spf13/viper"
)

// PodName example: marketplace-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: staging. ENV_NAME wins over the env_name config key.
func EnvName() string {
	return lookup("ENV_NAME", "env_name")
}

// AppName example: relayer
func AppName() string {
	return lookup("APP_NAME", "app_name")
}

func lookup(envKey, configKey string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return viper.GetString(configKey)
}
