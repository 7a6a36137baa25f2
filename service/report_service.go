// Package service implements the report generation pipeline and its
// delivery channels
package service

import (
	"context"
	"log/slog"
	"time"

	"weatherreport.app/models"
	"weatherreport.app/pkg/errors"
	"weatherreport.app/pkg/validation"
	"weatherreport.app/providers"
	"weatherreport.app/weather"
)

// ReportService orchestrates the pipeline from place name to composed report
type ReportService struct {
	geocoder  providers.GeocodingProvider
	forecasts providers.ForecastProvider
	composer  *weather.Composer
	repo      ReportRepositoryInterface
	now       func() time.Time
}

// NewReportService creates a new report service. The repository may be nil
// when archiving is disabled.
func NewReportService(
	geocoder providers.GeocodingProvider,
	forecasts providers.ForecastProvider,
	composer *weather.Composer,
	repo ReportRepositoryInterface,
) *ReportService {
	return &ReportService{
		geocoder:  geocoder,
		forecasts: forecasts,
		composer:  composer,
		repo:      repo,
		now:       time.Now,
	}
}

// GenerateReport resolves the location, fetches and normalizes its weather,
// and composes a report. An unresolvable location stops the pipeline before
// any weather fetch.
func (s *ReportService) GenerateReport(ctx context.Context, locationName string) (*models.WeatherReportResponse, error) {
	name, ok := validation.NormalizeLocation(locationName)
	if !ok {
		return nil, errors.NewValidationError("location cannot be empty")
	}

	location, err := s.geocoder.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	raw, err := s.forecasts.FetchForecast(ctx, *location)
	if err != nil {
		return nil, err
	}

	data := weather.Normalize(*raw, *location, s.now())
	report := s.composer.Compose(ctx, data)

	s.archive(report)

	return &models.WeatherReportResponse{
		Weather: data,
		Report:  report,
	}, nil
}

// ListRecentReports returns the latest archived reports
func (s *ReportService) ListRecentReports(limit int) ([]models.ReportRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	records, err := s.repo.ListRecent(limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list reports", err)
	}
	return records, nil
}

// archive stores the report best-effort; a storage failure never blocks the
// response
func (s *ReportService) archive(report models.Report) {
	if s.repo == nil {
		return
	}

	record := &models.ReportRecord{
		ReportID:    report.ID,
		Location:    report.Location.DisplayName(),
		BodyText:    report.BodyText,
		GeneratedBy: report.GeneratedBy,
	}
	if err := s.repo.Create(record); err != nil {
		slog.Warn("failed to archive report", "reportID", report.ID, "error", err)
	}
}
