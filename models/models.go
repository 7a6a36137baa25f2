// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is a resolved place; immutable once produced by the geocoder
type Location struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"admin_region,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// DisplayName returns the location formatted for report headers
func (l Location) DisplayName() string {
	name := l.Name
	if l.AdminRegion != "" {
		name += ", " + l.AdminRegion
	}
	if l.Country != "" {
		name += ", " + l.Country
	}
	return name
}

// RawCurrent carries the provider's current-conditions block as fetched
type RawCurrent struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	FeelsLike     float64 `json:"apparent_temperature"`
	Humidity      float64 `json:"relative_humidity_2m"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	Precipitation float64 `json:"precipitation"`
	Pressure      float64 `json:"surface_pressure"`
	WeatherCode   int     `json:"weather_code"`
}

// RawHourly carries the provider's parallel hourly series
type RawHourly struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	Precipitation []float64 `json:"precipitation"`
	WeatherCode   []int     `json:"weather_code"`
}

// RawDaily carries the provider's parallel daily series
type RawDaily struct {
	Time          []string  `json:"time"`
	MaxTemp       []float64 `json:"temperature_2m_max"`
	MinTemp       []float64 `json:"temperature_2m_min"`
	Precipitation []float64 `json:"precipitation_sum"`
	UVIndex       []float64 `json:"uv_index_max"`
	WeatherCode   []int     `json:"weather_code"`
}

// RawWeatherPayload bundles the three provider fetches; any subsection may be
// nil when its fetch failed, which is non-fatal downstream. Timestamps inside
// the subsections are the location's wall clock; UTCOffsetSeconds is the
// offset the provider reported for that location.
type RawWeatherPayload struct {
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Current          *RawCurrent `json:"current,omitempty"`
	Hourly           *RawHourly  `json:"hourly,omitempty"`
	Daily            *RawDaily   `json:"daily,omitempty"`
}

// CurrentConditions is the normalized current-weather snapshot; every field is
// always populated, defaults substituted for missing source data
type CurrentConditions struct {
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feels_like"`
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"wind_speed"`
	Precipitation float64   `json:"precipitation"`
	Pressure      int       `json:"pressure"`
	WeatherCode   int       `json:"weather_code"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	ObservedAt    time.Time `json:"observed_at"`
}

// HourlyPoint is one normalized hour of the short-range outlook
type HourlyPoint struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	WeatherCode   int       `json:"weather_code"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
}

// DayForecast is one normalized day of the multi-day outlook
type DayForecast struct {
	Date          time.Time `json:"date"`
	MaxTemp       float64   `json:"max_temp"`
	MinTemp       float64   `json:"min_temp"`
	Precipitation float64   `json:"precipitation"`
	UVIndex       float64   `json:"uv_index"`
	WeatherCode   int       `json:"weather_code"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
}

// NormalizedWeather is the schema-stable view the rest of the pipeline
// consumes; rendering never needs to branch on absent fields
type NormalizedWeather struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyPoint     `json:"hourly"`
	Forecast []DayForecast     `json:"forecast"`
}

// Report generation modes
const (
	GeneratedByModel     = "model"
	GeneratedByRuleBased = "rule-based"
)

// Report is a composed weather report; created fresh per request and never
// mutated after composition
type Report struct {
	ID          string    `json:"id"`
	Location    Location  `json:"location"`
	BodyText    string    `json:"body_text"`
	GeneratedBy string    `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ReportRecord is the archived form of a generated report
type ReportRecord struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ReportID    string         `json:"report_id" gorm:"uniqueIndex;not null"`
	Location    string         `json:"location" gorm:"index;not null"`
	BodyText    string         `json:"body_text" gorm:"not null"`
	GeneratedBy string         `json:"generated_by" gorm:"not null"`
	Delivered   bool           `json:"delivered" gorm:"default:false"`
	DeliveredTo string         `json:"delivered_to,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// SearchRequest represents the web form input for an inline report
type SearchRequest struct {
	Location string `json:"location" form:"location"`
}

// SendEmailRequest represents data required to email a report
type SendEmailRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Location string `json:"location" form:"location" binding:"required"`
}

// DeliveryResponse reports the outcome of a delivery attempt
type DeliveryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WeatherReportResponse is the JSON form of a normalized report
type WeatherReportResponse struct {
	Weather NormalizedWeather `json:"weather"`
	Report  Report            `json:"report"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
