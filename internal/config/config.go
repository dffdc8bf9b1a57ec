// Package config loads engine configuration from a YAML file and environment
// variables. Environment variables take precedence over the config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application's configuration structure.
type Config struct {
	DataDir        string `yaml:"data-dir" mapstructure:"data-dir"`
	Address        string `yaml:"address" mapstructure:"address"`
	MetricsAddress string `yaml:"metrics-address" mapstructure:"metrics-address"`
	LogLevel       string `yaml:"log-level" mapstructure:"log-level"`
	TopN           int    `yaml:"top-n" mapstructure:"top-n"`
	Model          string `yaml:"model" mapstructure:"model"`
}

var requiredFields = []string{
	"data-dir",
}

// field: default value
var optionalFields = map[string]interface{}{
	"address":         ":8080",
	"metrics-address": ":9090",
	"log-level":       "info",
	"top-n":           5,
	"model":           "gpt-4o-mini",
}

// Load reads configuration from the given YAML file and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field, value := range optionalFields {
		v.SetDefault(field, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
