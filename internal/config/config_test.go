package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	t.Setenv("OPENCAGE_API_KEY", "override-key")
	t.Setenv("DB_CONNECTION_STRING", "file::memory:?cache=shared")
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GEOCODER_LANGUAGE", "fr")

	cfg, err := loadConfig("../../configs/config.yaml")
	assert.NoError(t, err)

	assert.Equal(t, "override-key", cfg.Geocoder.APIKey)
	assert.Equal(t, "file::memory:?cache=shared", cfg.DB.ConnectionString)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "fr", cfg.Geocoder.Language)
}

func Test_Config_MissingAPIKeyFailsValidation(t *testing.T) {

	cfg := Config{
		Logger:  LoggerConfig{LogLevel: LevelInfo},
		Server:  ServerConfig{Port: 8080, MetricsPort: 9100},
		DB:      DBConfig{ConnectionString: "test.db"},
		Cleaner: CleanerConfig{RetentionDays: 30},
	}

	err := cfg.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}
