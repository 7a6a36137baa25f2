package service

import (
	"context"

	"weatherreport.app/models"
)

// ReportServiceInterface defines the interface for report generation
type ReportServiceInterface interface {
	GenerateReport(ctx context.Context, locationName string) (*models.WeatherReportResponse, error)
	ListRecentReports(limit int) ([]models.ReportRecord, error)
}

// EmailServiceInterface defines the interface for report email operations
type EmailServiceInterface interface {
	SendReportEmail(to string, report models.Report, data models.NormalizedWeather) error
}

// DeliveryGateway hands a composed report to one delivery channel. Delivery
// outcome is a boolean; a failed delivery is logged, never raised.
type DeliveryGateway interface {
	Deliver(report models.Report, data models.NormalizedWeather, destination string) bool
}

// ReportRepositoryInterface defines the interface for report archive operations
type ReportRepositoryInterface interface {
	Create(record *models.ReportRecord) error
	FindByReportID(reportID string) (*models.ReportRecord, error)
	ListRecent(limit int) ([]models.ReportRecord, error)
	MarkDelivered(reportID, deliveredTo string) error
}

// Ensure implementations satisfy interfaces
var _ ReportServiceInterface = (*ReportService)(nil)
var _ EmailServiceInterface = (*EmailService)(nil)
var _ DeliveryGateway = (*EmailDeliveryGateway)(nil)
var _ DeliveryGateway = (*FileDeliveryGateway)(nil)
