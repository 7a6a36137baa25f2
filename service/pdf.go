package service

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"weatherreport.app/models"
	"weatherreport.app/pkg/errors"
)

// RenderReportPDF renders the report as a single-page A4 document: a centered
// title, the current conditions, the multi-day outlook, and the report text
func RenderReportPDF(report models.Report, data models.NormalizedWeather) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Daily Weather Report: %s", report.Location.DisplayName())),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Current Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	current := data.Current
	pdf.MultiCell(0, 6, tr(fmt.Sprintf(
		"%s, %.1f°F (feels like %.1f°F)\nHumidity: %d%%\nWind: %.1f mph\nPressure: %d hPa\nPrecipitation: %.2f in",
		current.Description, current.Temperature, current.FeelsLike,
		current.Humidity, current.WindSpeed, current.Pressure, current.Precipitation,
	)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d-Day Forecast", len(data.Forecast)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, day := range data.Forecast {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s, high %.1f°F / low %.1f°F",
			day.Date.Weekday(), day.Description, day.MaxTemp, day.MinTemp)), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 6, tr(report.BodyText), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewGenerationError("failed to render report PDF", err)
	}
	return buf.Bytes(), nil
}
