package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "weatherreport.app/pkg/errors"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	original, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, original)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.Provider.GeocodingBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Provider.ForecastBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout())
	assert.Equal(t, 10*time.Minute, cfg.Provider.CacheTTL())
	assert.False(t, cfg.Generator.Enabled)
	assert.Equal(t, "mistral", cfg.Generator.Model)
	assert.Equal(t, TLSModeStartTLS, cfg.Email.TLSMode)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setEnv(t, "SERVER_PORT", "9090")
	setEnv(t, "DB_DRIVER", "postgres")
	setEnv(t, "DB_NAME", "reports")
	setEnv(t, "EMAIL_TLS_MODE", "tls")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.GetDSN(), "dbname=reports")
	assert.Equal(t, TLSModeImplicit, cfg.Email.TLSMode)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := ServerConfig{Port: 0}
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "oracle"}
		assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))
	})

	t.Run("SQLiteNeedsPath", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverSQLite}
		assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

		cfg.Path = "weatherreport.db"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("PostgresNeedsConnectionDetails", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "postgres", Name: "reports", SSLMode: "disable"}
		assert.NoError(t, cfg.Validate())

		cfg.SSLMode = "sometimes"
		assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))
	})
}

func TestProviderConfig_Validate(t *testing.T) {
	cfg := ProviderConfig{
		GeocodingBaseURL: "https://geocoding-api.open-meteo.com/v1",
		ForecastBaseURL:  "https://api.open-meteo.com/v1",
		TimeoutSeconds:   10,
		EnableCache:      true,
		CacheTTLMinutes:  10,
	}
	assert.NoError(t, cfg.Validate())

	cfg.ForecastBaseURL = "api.open-meteo.com"
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.ForecastBaseURL = "https://api.open-meteo.com/v1"
	cfg.CacheTTLMinutes = 0
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))
}

func TestGeneratorConfig_Validate(t *testing.T) {
	// A disabled generator skips validation entirely
	cfg := GeneratorConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.BaseURL = "http://localhost:11434"
	cfg.Model = "mistral"
	cfg.TimeoutSeconds = 30
	assert.NoError(t, cfg.Validate())
}

func TestEmailConfig_Validate(t *testing.T) {
	cfg := EmailConfig{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromName:    "Weather Report",
		FromAddress: "no-reply@example.com",
		TLSMode:     TLSModeStartTLS,
	}
	assert.NoError(t, cfg.Validate())

	cfg.TLSMode = "plaintext"
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.TLSMode = TLSModeImplicit
	cfg.FromAddress = "not-an-address"
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))
}

func TestSchedulerConfig_Validate(t *testing.T) {
	// A disabled scheduler skips validation entirely
	cfg := SchedulerConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.Recipients = []string{"user@example.com"}
	cfg.Location = "Atlanta"
	cfg.DailyAt = "25:00"
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.DailyAt = "07:00"
	assert.NoError(t, cfg.Validate())
}

func TestCacheConfig_Validate(t *testing.T) {
	cfg := CacheConfig{Type: "disk"}
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg = CacheConfig{Type: CacheTypeRedis}
	assert.True(t, apperrors.IsConfigurationError(cfg.Validate()))

	cfg.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}
