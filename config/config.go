package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherreport.app/pkg/errors"
)

// TLS modes for SMTP submission
const (
	TLSModeStartTLS = "starttls"
	TLSModeImplicit = "tls"
)

// Cache backend types
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Provider  ProviderConfig  `split_words:"true"`
	Generator GeneratorConfig `split_words:"true"`
	Email     EmailConfig     `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains report archive storage settings
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"weatherreport.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherreport"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ProviderConfig contains settings for the weather and geocoding providers
type ProviderConfig struct {
	GeocodingBaseURL string `envconfig:"GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
	ForecastBaseURL  string `envconfig:"FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1"`
	TimeoutSeconds   int    `envconfig:"PROVIDER_TIMEOUT_SECONDS" default:"10"`
	EnableCache      bool   `envconfig:"PROVIDER_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes  int    `envconfig:"PROVIDER_CACHE_TTL_MINUTES" default:"10"`
}

// Timeout returns the per-call HTTP timeout
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CacheTTL returns the forecast cache entry lifetime
func (p ProviderConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// GeneratorConfig contains settings for the optional text generation service
type GeneratorConfig struct {
	Enabled        bool   `envconfig:"GENERATOR_ENABLED" default:"false"`
	BaseURL        string `envconfig:"GENERATOR_BASE_URL" default:"http://localhost:11434"`
	Model          string `envconfig:"GENERATOR_MODEL" default:"mistral"`
	TimeoutSeconds int    `envconfig:"GENERATOR_TIMEOUT_SECONDS" default:"30"`
}

// Timeout returns the generation request timeout
func (g GeneratorConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// EmailConfig contains email server and sending settings. Credentials are
// supplied through the environment only.
type EmailConfig struct {
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME"`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"Weather Report"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"no-reply@weatherreport.app"`
	TLSMode      string `envconfig:"EMAIL_TLS_MODE" default:"starttls"`
}

// SchedulerConfig contains settings for scheduled report delivery. When
// OutputDir is set, each day's report PDF is also written there.
type SchedulerConfig struct {
	Enabled    bool     `envconfig:"SCHEDULER_ENABLED" default:"false"`
	Recipients []string `envconfig:"SCHEDULER_RECIPIENTS"`
	Location   string   `envconfig:"SCHEDULER_LOCATION" default:"Atlanta"`
	DailyAt    string   `envconfig:"SCHEDULER_DAILY_AT" default:"07:00"`
	OutputDir  string   `envconfig:"SCHEDULER_OUTPUT_DIR"`
}

// CacheConfig contains cache backend selection and redis settings
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty for the sqlite driver", nil)
		}
	case DriverPostgres:
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.validateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be sqlite or postgres", nil)
	}
	return nil
}

func (d *DatabaseConfig) validateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks provider configuration
func (p *ProviderConfig) Validate() error {
	if err := validateBaseURL("GEOCODING_BASE_URL", p.GeocodingBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("FORECAST_BASE_URL", p.ForecastBaseURL); err != nil {
		return err
	}
	if p.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("PROVIDER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if p.EnableCache && p.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("PROVIDER_CACHE_TTL_MINUTES must be at least 1", nil)
	}
	return nil
}

// Validate checks generator configuration
func (g *GeneratorConfig) Validate() error {
	if !g.Enabled {
		return nil
	}
	if err := validateBaseURL("GENERATOR_BASE_URL", g.BaseURL); err != nil {
		return err
	}
	if g.Model == "" {
		return errors.NewConfigurationError("GENERATOR_MODEL cannot be empty", nil)
	}
	if g.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("GENERATOR_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

// Validate checks email configuration
func (e *EmailConfig) Validate() error {
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > 65535 {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if e.FromName == "" {
		return errors.NewConfigurationError("EMAIL_FROM_NAME cannot be empty", nil)
	}
	if !strings.Contains(e.FromAddress, "@") {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS must be a valid email address", nil)
	}
	if e.TLSMode != TLSModeStartTLS && e.TLSMode != TLSModeImplicit {
		return errors.NewConfigurationError("EMAIL_TLS_MODE must be starttls or tls", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if !s.Enabled {
		return nil
	}
	if len(s.Recipients) == 0 && s.OutputDir == "" {
		return errors.NewConfigurationError("SCHEDULER_RECIPIENTS or SCHEDULER_OUTPUT_DIR must be set when the scheduler is enabled", nil)
	}
	if s.Location == "" {
		return errors.NewConfigurationError("SCHEDULER_LOCATION cannot be empty when the scheduler is enabled", nil)
	}
	if _, err := time.Parse("15:04", s.DailyAt); err != nil {
		return errors.NewConfigurationError("SCHEDULER_DAILY_AT must be in HH:MM format", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != CacheTypeMemory && c.Type != CacheTypeRedis {
		return errors.NewConfigurationError("CACHE_TYPE must be memory or redis", nil)
	}
	if c.Type == CacheTypeRedis && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty for the redis cache", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
