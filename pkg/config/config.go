package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AOSmithConfig struct {
	Email    string
	Password string
}

type HealthCheckConfig struct {
	Enabled bool
	Port    int
}

type Config struct {
	AOSmith     AOSmithConfig
	HealthCheck HealthCheckConfig
	LogLevel    string
}

const (
	undefined string = "__undefined__"

	envKeyAOSmithEmail       string = "aosmith_email"
	envKeyAOSmithPassword    string = "aosmith_password"
	envKeyLogLevel           string = "log_level"
	envKeyHealthCheckEnabled string = "health_check_enabled"
	envKeyHealthCheckPort    string = "health_check_port"
)

var defaultConfig = map[string]interface{}{
	envKeyAOSmithEmail:       undefined,
	envKeyAOSmithPassword:    undefined,
	envKeyLogLevel:           "INFO",
	envKeyHealthCheckEnabled: false,
	envKeyHealthCheckPort:    8080,
}

// ReadConfig returns a Config built from config.yaml and env variables.
func ReadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	// Set the current directory where the binary is being run.
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	for key, value := range defaultConfig {
		if value != undefined {
			viper.SetDefault(key, value)
		}
	}

	// The config file is optional: env variables alone are a valid setup.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("ReadInConfig error: %w", err)
		}
	}

	// Check for undefined fields.
	for fieldName, defaultValue := range defaultConfig {
		if defaultValue == undefined && !viper.IsSet(fieldName) {
			return nil, fmt.Errorf("required field not found in config: %s", fieldName)
		}
	}

	config := &Config{
		AOSmith: AOSmithConfig{
			Email:    viper.GetString(envKeyAOSmithEmail),
			Password: viper.GetString(envKeyAOSmithPassword),
		},
		HealthCheck: HealthCheckConfig{
			Enabled: viper.GetBool(envKeyHealthCheckEnabled),
			Port:    viper.GetInt(envKeyHealthCheckPort),
		},
		LogLevel: viper.GetString(envKeyLogLevel),
	}

	return config, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("{Email:%s HealthCheck:%+v LogLevel:%s}", c.AOSmith.Email, c.HealthCheck, c.LogLevel)
}
