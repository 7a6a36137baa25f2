package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherreport.app/config"
	"weatherreport.app/models"
)

var atlanta = models.Location{
	Name:      "Atlanta",
	Latitude:  33.749,
	Longitude: -84.388,
}

const (
	currentBody = `{"utc_offset_seconds":-14400,"current":{"time":"2025-06-16T14:00","temperature_2m":72.4,"apparent_temperature":74.1,"relative_humidity_2m":65,"wind_speed_10m":8.3,"precipitation":0,"surface_pressure":1013,"weather_code":2}}`
	hourlyBody  = `{"utc_offset_seconds":-14400,"hourly":{"time":["2025-06-16T14:00","2025-06-16T15:00"],"temperature_2m":[72.4,73.0],"precipitation":[0,0.1],"weather_code":[2,3]}}`
	dailyBody   = `{"utc_offset_seconds":-14400,"daily":{"time":["2025-06-16","2025-06-17"],"temperature_2m_max":[75,78],"temperature_2m_min":[60,62],"precipitation_sum":[0,0.2],"uv_index_max":[7,8],"weather_code":[2,61]}}`
)

func newOpenMeteoTestClient(handler http.HandlerFunc) (*OpenMeteoClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewOpenMeteoClient(&config.ProviderConfig{
		ForecastBaseURL: server.URL,
		TimeoutSeconds:  5,
	})
	return client, server
}

func forecastHandler(t *testing.T, currentStatus, hourlyStatus, dailyStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))

		w.Header().Set("Content-Type", "application/json")
		query := r.URL.Query()
		switch {
		case query.Get("current") != "":
			w.WriteHeader(currentStatus)
			if currentStatus == http.StatusOK {
				_, _ = w.Write([]byte(currentBody))
			}
		case query.Get("hourly") != "":
			w.WriteHeader(hourlyStatus)
			if hourlyStatus == http.StatusOK {
				_, _ = w.Write([]byte(hourlyBody))
			}
		case query.Get("daily") != "":
			w.WriteHeader(dailyStatus)
			if dailyStatus == http.StatusOK {
				_, _ = w.Write([]byte(dailyBody))
			}
		default:
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
	}
}

func TestOpenMeteoClient_FetchForecast(t *testing.T) {
	client, server := newOpenMeteoTestClient(forecastHandler(t, http.StatusOK, http.StatusOK, http.StatusOK))
	defer server.Close()

	payload, err := client.FetchForecast(context.Background(), atlanta)

	require.NoError(t, err)
	require.NotNil(t, payload.Current)
	require.NotNil(t, payload.Hourly)
	require.NotNil(t, payload.Daily)
	assert.Equal(t, 72.4, payload.Current.Temperature)
	assert.Equal(t, 2, payload.Current.WeatherCode)
	assert.Equal(t, []float64{72.4, 73.0}, payload.Hourly.Temperature)
	assert.Equal(t, []float64{75, 78}, payload.Daily.MaxTemp)
	assert.Equal(t, -14400, payload.UTCOffsetSeconds)
}

func TestOpenMeteoClient_FailuresAreIsolated(t *testing.T) {
	// The hourly endpoint failing must not block the other fetches
	client, server := newOpenMeteoTestClient(forecastHandler(t, http.StatusOK, http.StatusNotFound, http.StatusOK))
	defer server.Close()

	payload, err := client.FetchForecast(context.Background(), atlanta)

	require.NoError(t, err)
	assert.NotNil(t, payload.Current)
	assert.Nil(t, payload.Hourly)
	assert.NotNil(t, payload.Daily)
	assert.Equal(t, -14400, payload.UTCOffsetSeconds)
}

func TestOpenMeteoClient_AllEndpointsDown(t *testing.T) {
	// A fully empty payload is still a valid result; the normalizer
	// substitutes defaults downstream
	client, server := newOpenMeteoTestClient(forecastHandler(t, http.StatusNotFound, http.StatusNotFound, http.StatusNotFound))
	defer server.Close()

	payload, err := client.FetchForecast(context.Background(), atlanta)

	require.NoError(t, err)
	assert.Nil(t, payload.Current)
	assert.Nil(t, payload.Hourly)
	assert.Nil(t, payload.Daily)
}

func TestOpenMeteoClient_MalformedSubsection(t *testing.T) {
	client, server := newOpenMeteoTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("current") != "" {
			_, _ = w.Write([]byte(`{broken`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	payload, err := client.FetchForecast(context.Background(), atlanta)

	require.NoError(t, err)
	assert.Nil(t, payload.Current)
}
