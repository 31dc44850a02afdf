package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

func (config ServerConfig) validate() error {

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %v", config.Port)
	}

	if config.MetricsPort <= 0 || config.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %v", config.MetricsPort)
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("server.port", "PORT")
}
