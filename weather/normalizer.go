package weather

import (
	"math"
	"time"

	"weatherreport.app/models"
)

// Defaults substituted when a provider subsection is missing or malformed. A
// best-effort report is always preferable to no report, so normalization
// never fails.
const (
	DescriptionUnavailable = "Data unavailable"
	IconUnavailable        = "unknown"

	// HourlyWindowSize is the guaranteed length of the hourly outlook when
	// the source series is absent
	HourlyWindowSize = 12

	// ForecastDays is the guaranteed length of the multi-day outlook
	ForecastDays = 5

	// synthesizedLowOffset anchors a synthesized day's low below its high
	synthesizedLowOffset = 10.0
)

// Provider timestamp layouts (Open-Meteo local time, no zone suffix)
const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyTimeLayout  = "2006-01-02"
)

// Normalize maps a raw provider payload into the stable internal schema.
// Every numeric field of the result is always present; missing or malformed
// subsections are replaced by documented defaults rather than propagated as
// errors. Out-of-range provider values pass through unmodified.
func Normalize(raw models.RawWeatherPayload, location models.Location, now time.Time) models.NormalizedWeather {
	// Provider timestamps are the location's wall clock; shift now by the
	// reported offset before any windowing comparison.
	localNow := now.UTC().Add(time.Duration(raw.UTCOffsetSeconds) * time.Second)

	current := normalizeCurrent(raw.Current, localNow)

	return models.NormalizedWeather{
		Location: location,
		Current:  current,
		Hourly:   normalizeHourly(raw.Hourly, current, localNow),
		Forecast: normalizeDaily(raw.Daily, current, localNow),
	}
}

func normalizeCurrent(raw *models.RawCurrent, now time.Time) models.CurrentConditions {
	if raw == nil {
		return models.CurrentConditions{
			Description: DescriptionUnavailable,
			Icon:        IconUnavailable,
			ObservedAt:  now,
		}
	}

	cond := LookupCode(raw.WeatherCode)
	observed := now
	if t, err := time.Parse(hourlyTimeLayout, raw.Time); err == nil {
		observed = t
	}

	return models.CurrentConditions{
		Temperature:   round1(raw.Temperature),
		FeelsLike:     round1(raw.FeelsLike),
		Humidity:      int(math.Round(raw.Humidity)),
		WindSpeed:     round1(raw.WindSpeed),
		Precipitation: round2(raw.Precipitation),
		Pressure:      int(math.Round(raw.Pressure)),
		WeatherCode:   raw.WeatherCode,
		Description:   cond.Description,
		Icon:          cond.Icon,
		ObservedAt:    observed,
	}
}

// normalizeHourly selects source entries from the current hour onward, capped
// at HourlyWindowSize and in chronological order. When the source series is
// absent or yields no qualifying entries it synthesizes a full window at
// hourly offsets, carrying the current temperature forward with the
// unavailable marker, so the output is never empty.
func normalizeHourly(raw *models.RawHourly, current models.CurrentConditions, now time.Time) []models.HourlyPoint {
	windowStart := now.Truncate(time.Hour)

	var points []models.HourlyPoint
	if raw != nil {
		for i, ts := range raw.Time {
			t, err := time.Parse(hourlyTimeLayout, ts)
			if err != nil || t.Before(windowStart) {
				continue
			}

			code := intAt(raw.WeatherCode, i)
			cond := LookupCode(code)
			points = append(points, models.HourlyPoint{
				Time:          t,
				Temperature:   round1(floatAt(raw.Temperature, i)),
				Precipitation: round2(floatAt(raw.Precipitation, i)),
				WeatherCode:   code,
				Description:   cond.Description,
				Icon:          cond.Icon,
			})
			if len(points) == HourlyWindowSize {
				break
			}
		}
	}

	if len(points) > 0 {
		return points
	}

	points = make([]models.HourlyPoint, 0, HourlyWindowSize)
	for i := 0; i < HourlyWindowSize; i++ {
		points = append(points, models.HourlyPoint{
			Time:        windowStart.Add(time.Duration(i) * time.Hour),
			Temperature: current.Temperature,
			WeatherCode: current.WeatherCode,
			Description: DescriptionUnavailable,
			Icon:        IconUnavailable,
		})
	}
	return points
}

// normalizeDaily takes up to ForecastDays entries in source order; when the
// series is absent it synthesizes a full outlook anchored to the current
// reading with low = high - 10, so rendering never sees an empty sequence.
func normalizeDaily(raw *models.RawDaily, current models.CurrentConditions, now time.Time) []models.DayForecast {
	var days []models.DayForecast
	if raw != nil {
		for i, ts := range raw.Time {
			if len(days) == ForecastDays {
				break
			}

			date, err := time.Parse(dailyTimeLayout, ts)
			if err != nil {
				continue
			}

			code := intAt(raw.WeatherCode, i)
			cond := LookupCode(code)
			days = append(days, models.DayForecast{
				Date:          date,
				MaxTemp:       round1(floatAt(raw.MaxTemp, i)),
				MinTemp:       round1(floatAt(raw.MinTemp, i)),
				Precipitation: round2(floatAt(raw.Precipitation, i)),
				UVIndex:       round1(floatAt(raw.UVIndex, i)),
				WeatherCode:   code,
				Description:   cond.Description,
				Icon:          cond.Icon,
			})
		}
	}

	if len(days) > 0 {
		return days
	}

	days = make([]models.DayForecast, 0, ForecastDays)
	base := now.Truncate(24 * time.Hour)
	for i := 0; i < ForecastDays; i++ {
		days = append(days, models.DayForecast{
			Date:        base.AddDate(0, 0, i),
			MaxTemp:     current.Temperature,
			MinTemp:     round1(current.Temperature - synthesizedLowOffset),
			Description: DescriptionUnavailable,
			Icon:        IconUnavailable,
		})
	}
	return days
}

// floatAt guards against provider series of mismatched lengths
func floatAt(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

func intAt(series []int, i int) int {
	if i < len(series) {
		return series[i]
	}
	return 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
