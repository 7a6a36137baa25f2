// Package weather implements the core normalization and report-composition
// pipeline: raw provider payloads in, schema-stable data and composed
// reports out.
package weather

// Condition pairs a human-readable description with a display icon
type Condition struct {
	Description string
	Icon        string
}

// UnknownCondition is returned for any weather code outside the table
var UnknownCondition = Condition{Description: "Unknown", Icon: "❓"}

// weatherCodes maps WMO interpretation codes as published by Open-Meteo to
// display conditions
var weatherCodes = map[int]Condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌦️"},
	56: {"Light freezing drizzle", "🌦️"},
	57: {"Dense freezing drizzle", "🌦️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Slight snow fall", "🌨️"},
	73: {"Moderate snow fall", "🌨️"},
	75: {"Heavy snow fall", "🌨️"},
	77: {"Snow grains", "🌨️"},
	80: {"Slight rain showers", "🌧️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "🌧️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// LookupCode resolves a provider weather code to a display condition. The
// lookup is total: unknown codes return UnknownCondition, never an error.
func LookupCode(code int) Condition {
	if cond, ok := weatherCodes[code]; ok {
		return cond
	}
	return UnknownCondition
}
