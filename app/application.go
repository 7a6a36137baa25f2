// Package app wires the application's dependencies together
package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weatherreport.app/api"
	"weatherreport.app/config"
	"weatherreport.app/database"
	"weatherreport.app/providers"
	"weatherreport.app/repository"
	"weatherreport.app/scheduler"
	"weatherreport.app/service"
	"weatherreport.app/weather"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...", "driver", app.config.Database.Driver)

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	forecastProvider, err := app.createForecastProvider()
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	geocoder := providers.NewGeocodingClient(&app.config.Provider)
	composer := weather.NewComposer(app.createTextGenerator())

	reportRepo := repository.NewReportRepository(app.db)
	reportService := service.NewReportService(geocoder, forecastProvider, composer, reportRepo)

	emailProvider := providers.NewSMTPEmailProvider(&app.config.Email)
	emailService := service.NewEmailService(emailProvider)
	emailGateway := service.NewEmailDeliveryGateway(emailService, reportRepo)

	app.server = api.NewServer(app.config, reportService, emailGateway)
	if app.config.Scheduler.Enabled {
		app.scheduler = scheduler.NewScheduler(
			&app.config.Scheduler, reportService, emailGateway, service.NewFileDeliveryGateway())
	}

	slog.Info("Services initialized successfully")
	return nil
}

// createForecastProvider builds the forecast client, wrapped in a caching
// proxy when caching is enabled
func (app *Application) createForecastProvider() (providers.ForecastProvider, error) {
	client := providers.NewOpenMeteoClient(&app.config.Provider)
	if !app.config.Provider.EnableCache {
		return client, nil
	}

	backend, err := providers.NewCacheFromConfig(&app.config.Cache)
	if err != nil {
		return nil, err
	}

	slog.Debug("Forecast cache enabled",
		"type", app.config.Cache.Type, "ttl", app.config.Provider.CacheTTL())
	return providers.NewForecastCacheProxy(client, backend, app.config.Provider.CacheTTL(), app.config.Cache.Type), nil
}

// createTextGenerator returns the configured generator, or nil for the
// rule-based composition path
func (app *Application) createTextGenerator() weather.TextGenerator {
	if !app.config.Generator.Enabled {
		return nil
	}

	slog.Debug("Text generator enabled",
		"baseURL", app.config.Generator.BaseURL, "model", app.config.Generator.Model)
	return providers.NewOllamaGenerator(&app.config.Generator)
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if app.scheduler != nil {
		slog.Info("Starting scheduler...")
		if err := app.scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
