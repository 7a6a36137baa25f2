// Package scheduler implements scheduled report delivery
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"weatherreport.app/config"
	"weatherreport.app/service"
)

const jobTimeout = 2 * time.Minute

// Scheduler emails the daily report for the configured location to every
// configured recipient, and optionally archives the PDF to a directory
type Scheduler struct {
	scheduler     *gocron.Scheduler
	config        *config.SchedulerConfig
	reportService service.ReportServiceInterface
	emailGateway  service.DeliveryGateway
	fileGateway   service.DeliveryGateway
}

// NewScheduler creates a new daily report scheduler
func NewScheduler(
	cfg *config.SchedulerConfig,
	reportService service.ReportServiceInterface,
	emailGateway service.DeliveryGateway,
	fileGateway service.DeliveryGateway,
) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.Local),
		config:        cfg,
		reportService: reportService,
		emailGateway:  emailGateway,
		fileGateway:   fileGateway,
	}
}

// Start schedules the daily delivery job and starts the underlying scheduler
func (s *Scheduler) Start() error {
	if len(s.config.Recipients) == 0 && s.config.OutputDir == "" {
		slog.Info("scheduler has no recipients or output directory configured, nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(1).Day().At(s.config.DailyAt).Do(s.runDailyDelivery)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("daily report delivery scheduled",
		"location", s.config.Location, "at", s.config.DailyAt, "recipients", len(s.config.Recipients))
	return nil
}

// Stop stops the scheduler and cancels any future jobs
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// runDailyDelivery generates one report and delivers it to every recipient.
// A failed recipient does not block the rest.
func (s *Scheduler) runDailyDelivery() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	response, err := s.reportService.GenerateReport(ctx, s.config.Location)
	if err != nil {
		slog.Error("scheduled report generation failed",
			"location", s.config.Location, "error", err)
		return
	}

	delivered := 0
	for _, recipient := range s.config.Recipients {
		if s.emailGateway.Deliver(response.Report, response.Weather, recipient) {
			delivered++
		}
	}

	if s.config.OutputDir != "" {
		destination := filepath.Join(s.config.OutputDir,
			fmt.Sprintf("weather_report_%s.pdf", time.Now().Format("2006-01-02")))
		s.fileGateway.Deliver(response.Report, response.Weather, destination)
	}

	slog.Info("scheduled report delivery finished",
		"location", s.config.Location, "delivered", delivered, "recipients", len(s.config.Recipients))
}
