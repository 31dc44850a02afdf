package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type GeocoderConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	Language             string        `mapstructure:"language"`
	ResultIndex          int           `mapstructure:"result_index"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	MaxRetries           int           `mapstructure:"max_retries"`
	RetryDelay           time.Duration `mapstructure:"retry_delay"`
}

func (config GeocoderConfig) validate() error {

	var missingFields []string

	if config.APIKey == "" {
		missingFields = append(missingFields, "api_key")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.ResultIndex < 0 {
		return fmt.Errorf("result_index must be non-negative")
	}

	if config.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}

	return nil
}

func (config GeocoderConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("geocoder.api_key", "OPENCAGE_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("geocoder.language", "GEOCODER_LANGUAGE"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
