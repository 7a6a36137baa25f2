package service

import (
	"log/slog"
	"os"
	"path/filepath"

	"weatherreport.app/models"
)

// EmailDeliveryGateway delivers reports over email. The destination is the
// recipient address.
type EmailDeliveryGateway struct {
	emailService EmailServiceInterface
	repo         ReportRepositoryInterface
}

// NewEmailDeliveryGateway creates an email delivery gateway. The repository
// may be nil when archiving is disabled.
func NewEmailDeliveryGateway(emailService EmailServiceInterface, repo ReportRepositoryInterface) *EmailDeliveryGateway {
	return &EmailDeliveryGateway{
		emailService: emailService,
		repo:         repo,
	}
}

// Deliver sends the report to the given address and records the delivery on
// success. Any failure is logged and reported as false.
func (g *EmailDeliveryGateway) Deliver(report models.Report, data models.NormalizedWeather, destination string) bool {
	if err := g.emailService.SendReportEmail(destination, report, data); err != nil {
		slog.Error("report email delivery failed",
			"reportID", report.ID, "to", destination, "error", err)
		return false
	}

	if g.repo != nil {
		if err := g.repo.MarkDelivered(report.ID, destination); err != nil {
			slog.Warn("delivered report could not be marked in archive",
				"reportID", report.ID, "error", err)
		}
	}

	slog.Info("report delivered by email", "reportID", report.ID, "to", destination)
	return true
}

// FileDeliveryGateway writes rendered report PDFs to the local filesystem.
// The destination is the output file path.
type FileDeliveryGateway struct{}

// NewFileDeliveryGateway creates a file delivery gateway
func NewFileDeliveryGateway() *FileDeliveryGateway {
	return &FileDeliveryGateway{}
}

// Deliver renders the report PDF and writes it to the destination path
func (g *FileDeliveryGateway) Deliver(report models.Report, data models.NormalizedWeather, destination string) bool {
	content, err := RenderReportPDF(report, data)
	if err != nil {
		slog.Error("report PDF rendering failed", "reportID", report.ID, "error", err)
		return false
	}

	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("report output directory could not be created",
				"reportID", report.ID, "path", destination, "error", err)
			return false
		}
	}

	if err := os.WriteFile(destination, content, 0o644); err != nil {
		slog.Error("report file delivery failed",
			"reportID", report.ID, "path", destination, "error", err)
		return false
	}

	slog.Info("report delivered to file", "reportID", report.ID, "path", destination)
	return true
}
