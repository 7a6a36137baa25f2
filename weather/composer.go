package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"weatherreport.app/models"
)

// TextGenerator produces free-form prose for a prompt. Implementations are
// expected to be slow and unreliable; any failure triggers the rule-based
// fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Composer turns normalized weather data into a report. With a generator it
// requests model prose first; without one, or on any generator failure, it
// composes deterministically from fixed rules.
type Composer struct {
	generator TextGenerator
}

// NewComposer creates a composer. A nil generator selects the rule-based
// path unconditionally.
func NewComposer(generator TextGenerator) *Composer {
	return &Composer{generator: generator}
}

// Compose builds a report from normalized data. It never fails: generator
// errors fall through silently to the rule-based path, and an unexpected
// panic during rule-based composition degrades to a minimal two-line report.
func (c *Composer) Compose(ctx context.Context, data models.NormalizedWeather) models.Report {
	report := models.Report{
		ID:          uuid.NewString(),
		Location:    data.Location,
		GeneratedAt: time.Now().UTC(),
	}

	if c.generator != nil {
		prose, err := c.generator.Generate(ctx, BuildPrompt(data))
		if err == nil && strings.TrimSpace(prose) != "" {
			report.BodyText = strings.TrimSpace(prose)
			report.GeneratedBy = models.GeneratedByModel
			return report
		}
		slog.Warn("text generator unavailable, using rule-based composition",
			"location", data.Location.Name, "error", err)
	}

	report.BodyText = c.ruleBasedBody(data)
	report.GeneratedBy = models.GeneratedByRuleBased
	return report
}

// BuildPrompt renders the structured prompt sent to the text generator
func BuildPrompt(data models.NormalizedWeather) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a brief and professional description of the weather in %s based on this data: ",
		data.Location.DisplayName())
	fmt.Fprintf(&b, "%s, %.1f°F (feels like %.1f°F), humidity %d%%, wind %.1f mph, precipitation %.2f in.",
		data.Current.Description, data.Current.Temperature, data.Current.FeelsLike,
		data.Current.Humidity, data.Current.WindSpeed, data.Current.Precipitation)

	b.WriteString(" Forecast:")
	for _, day := range data.Forecast {
		fmt.Fprintf(&b, " %s %s high %.1f°F low %.1f°F;",
			day.Date.Weekday(), day.Description, day.MaxTemp, day.MinTemp)
	}
	return b.String()
}

// ruleBasedBody assembles the deterministic report in fixed section order:
// header, greeting, current summary, forecast list, trend notes,
// recommendations, sign-off.
func (c *Composer) ruleBasedBody(data models.NormalizedWeather) (body string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("rule-based composition failed, using minimal report",
				"location", data.Location.Name, "panic", r)
			body = minimalBody(data)
		}
	}()

	var b strings.Builder

	fmt.Fprintf(&b, "Weather Report for %s\n\n", data.Location.DisplayName())
	b.WriteString(greeting(data.Current.ObservedAt))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Currently %s with a %s %.1f°F (feels like %.1f°F). Humidity %d%%, wind %.1f mph, pressure %d hPa.\n\n",
		data.Current.Description, temperatureDescriptor(data.Current.Temperature),
		data.Current.Temperature, data.Current.FeelsLike,
		data.Current.Humidity, data.Current.WindSpeed, data.Current.Pressure)

	fmt.Fprintf(&b, "%d-Day Forecast:\n", len(data.Forecast))
	for _, day := range data.Forecast {
		fmt.Fprintf(&b, "- %s: %s, high %.1f°F / low %.1f°F\n",
			day.Date.Weekday(), day.Description, day.MaxTemp, day.MinTemp)
	}

	if notes := trendNotes(data.Forecast); len(notes) > 0 {
		for _, note := range notes {
			b.WriteString("\n" + note)
		}
		b.WriteString("\n")
	}

	if recs := recommendations(data); len(recs) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range recs {
			b.WriteString("- " + rec + "\n")
		}
	}

	b.WriteString("\nStay safe and enjoy your day!")
	return b.String()
}

// minimalBody is the last-resort report: location plus current reading
func minimalBody(data models.NormalizedWeather) string {
	return fmt.Sprintf("Weather Report for %s\nCurrent reading: %.1f°F, %s",
		data.Location.DisplayName(), data.Current.Temperature, data.Current.Description)
}

// greeting keys on the observation's local hour: 5-11 morning, 12-17
// afternoon, else evening
func greeting(observed time.Time) string {
	switch hour := observed.Hour(); {
	case hour >= 5 && hour <= 11:
		return "Good morning!"
	case hour >= 12 && hour <= 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

// temperatureDescriptor maps a reading to its qualitative band
func temperatureDescriptor(temp float64) string {
	switch {
	case temp > 85:
		return "very warm"
	case temp > 75:
		return "warm"
	case temp > 60:
		return "mild"
	case temp > 45:
		return "cool"
	case temp >= 30:
		return "cold"
	default:
		return "very cold"
	}
}

// trendNotes flags day-over-day max-temperature swings larger than 5 degrees
func trendNotes(forecast []models.DayForecast) []string {
	var notes []string
	for i := 1; i < len(forecast); i++ {
		delta := forecast[i].MaxTemp - forecast[i-1].MaxTemp
		day := forecast[i].Date.Weekday()
		switch {
		case delta > 5:
			notes = append(notes, fmt.Sprintf("Warming trend on %s.", day))
		case delta < -5:
			notes = append(notes, fmt.Sprintf("Cooling trend on %s.", day))
		}
	}
	return notes
}

// recommendations runs the independent predicates in fixed order; every
// matching one is included
func recommendations(data models.NormalizedWeather) []string {
	var recs []string
	current := data.Current

	if current.Temperature > 85 {
		recs = append(recs, "Stay hydrated and limit time in the direct sun.")
	}
	if current.Temperature < 32 {
		recs = append(recs, "Bundle up in layers before heading out.")
	}
	if current.Humidity > 80 {
		recs = append(recs, "High humidity today, so dress light and take it easy outdoors.")
	}
	if current.WindSpeed > 15 {
		recs = append(recs, "Strong winds expected, secure loose outdoor items.")
	}
	if current.Precipitation > 0.1 {
		recs = append(recs, "Carry an umbrella, rain is likely today.")
	}
	if precipInNextTwoDays(data.Forecast) {
		recs = append(recs, "Rain is expected over the next couple of days, plan around it.")
	}
	if snowInNextTwoDays(data.Forecast) {
		recs = append(recs, "Snow is in the forecast, allow extra travel time.")
	}
	return recs
}

// nextTwoDays are the two forecast entries after today's
func nextTwoDays(forecast []models.DayForecast) []models.DayForecast {
	if len(forecast) <= 1 {
		return nil
	}
	end := 3
	if end > len(forecast) {
		end = len(forecast)
	}
	return forecast[1:end]
}

func precipInNextTwoDays(forecast []models.DayForecast) bool {
	for _, day := range nextTwoDays(forecast) {
		if day.Precipitation > 0.1 {
			return true
		}
	}
	return false
}

func snowInNextTwoDays(forecast []models.DayForecast) bool {
	for _, day := range nextTwoDays(forecast) {
		if strings.Contains(strings.ToLower(day.Description), "snow") {
			return true
		}
	}
	return false
}
