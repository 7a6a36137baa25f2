package app

import (
	"log"
	"strings"

	"weatherreport.app/config"
)

// ConfigDisplayer prints the loaded configuration for troubleshooting
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration with secrets masked
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Driver: %s\n", cfg.Database.Driver)
	if cfg.Database.Driver == config.DriverPostgres {
		log.Printf("  Host: %s\n", cfg.Database.Host)
		log.Printf("  Port: %d\n", cfg.Database.Port)
		log.Printf("  User: %s\n", cfg.Database.User)
		log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
		log.Printf("  Name: %s\n", cfg.Database.Name)
		log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)
	} else {
		log.Printf("  Path: %s\n", cfg.Database.Path)
	}

	log.Printf("\nPROVIDERS:\n")
	log.Printf("  Geocoding Base URL: %s\n", cfg.Provider.GeocodingBaseURL)
	log.Printf("  Forecast Base URL: %s\n", cfg.Provider.ForecastBaseURL)
	log.Printf("  Timeout: %s\n", cfg.Provider.Timeout())
	log.Printf("  Cache Enabled: %t\n", cfg.Provider.EnableCache)
	log.Printf("  Cache TTL: %s\n", cfg.Provider.CacheTTL())

	log.Printf("\nGENERATOR:\n")
	log.Printf("  Enabled: %t\n", cfg.Generator.Enabled)
	log.Printf("  Base URL: %s\n", cfg.Generator.BaseURL)
	log.Printf("  Model: %s\n", cfg.Generator.Model)

	log.Printf("\nEMAIL:\n")
	log.Printf("  SMTP Host: %s\n", cfg.Email.SMTPHost)
	log.Printf("  SMTP Port: %d\n", cfg.Email.SMTPPort)
	log.Printf("  SMTP Username: %s\n", cfg.Email.SMTPUsername)
	log.Printf("  SMTP Password: %s\n", cd.maskString(cfg.Email.SMTPPassword))
	log.Printf("  From Name: %s\n", cfg.Email.FromName)
	log.Printf("  From Address: %s\n", cfg.Email.FromAddress)
	log.Printf("  TLS Mode: %s\n", cfg.Email.TLSMode)

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Enabled: %t\n", cfg.Scheduler.Enabled)
	log.Printf("  Location: %s\n", cfg.Scheduler.Location)
	log.Printf("  Daily At: %s\n", cfg.Scheduler.DailyAt)
	log.Printf("  Recipients: %d\n", len(cfg.Scheduler.Recipients))
	if cfg.Scheduler.OutputDir != "" {
		log.Printf("  Output Dir: %s\n", cfg.Scheduler.OutputDir)
	}

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	if cfg.Cache.Type == config.CacheTypeRedis {
		log.Printf("  Redis Addr: %s\n", cfg.Cache.RedisAddr)
		log.Printf("  Redis Password: %s\n", cd.maskString(cfg.Cache.RedisPassword))
		log.Printf("  Redis DB: %d\n", cfg.Cache.RedisDB)
	}

	log.Println("===================================")
}

// maskString masks sensitive information like passwords
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}
