// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"weatherreport.app/models"
)

// ReportRepository handles data access operations for archived reports
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new repository for report records
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create archives a generated report
func (r *ReportRepository) Create(record *models.ReportRecord) error {
	result := r.db.Create(record)
	if result.Error != nil {
		slog.Error("failed to archive report", "reportID", record.ReportID, "error", result.Error)
		return result.Error
	}

	slog.Debug("archived report", "reportID", record.ReportID, "location", record.Location)
	return nil
}

// FindByReportID retrieves an archived report by its report identifier
func (r *ReportRepository) FindByReportID(reportID string) (*models.ReportRecord, error) {
	var record models.ReportRecord
	result := r.db.Where("report_id = ?", reportID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("failed to find report", "reportID", reportID, "error", result.Error)
		return nil, result.Error
	}

	return &record, nil
}

// ListRecent retrieves the most recently archived reports, newest first
func (r *ReportRepository) ListRecent(limit int) ([]models.ReportRecord, error) {
	var records []models.ReportRecord
	result := r.db.Order("created_at DESC").Limit(limit).Find(&records)
	if result.Error != nil {
		slog.Error("failed to list reports", "error", result.Error)
		return nil, result.Error
	}

	return records, nil
}

// MarkDelivered records a successful delivery against an archived report
func (r *ReportRepository) MarkDelivered(reportID, deliveredTo string) error {
	result := r.db.Model(&models.ReportRecord{}).
		Where("report_id = ?", reportID).
		Updates(map[string]interface{}{"delivered": true, "delivered_to": deliveredTo})
	if result.Error != nil {
		slog.Error("failed to mark report delivered", "reportID", reportID, "error", result.Error)
		return result.Error
	}

	return nil
}
