package config

import "fmt"

type CleanerConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

func (config CleanerConfig) validate() error {
	if config.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be greater than zero")
	}
	return nil
}
