package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"weatherreport.app/config"
	"weatherreport.app/metrics"
	"weatherreport.app/models"
)

// OpenMeteoClient retrieves current, hourly, and daily weather from the
// Open-Meteo forecast API. The three fetches are independent: one endpoint
// failing must not block the others, so each failure only leaves its
// subsection nil.
type OpenMeteoClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	metrics *metrics.ProviderMetrics
}

// NewOpenMeteoClient creates a new Open-Meteo forecast client
func NewOpenMeteoClient(cfg *config.ProviderConfig) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: cfg.ForecastBaseURL,
		httpCfg: HTTPClientConfig{
			Client: &http.Client{Timeout: cfg.Timeout()},
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newProviderBreaker("openmeteo"),
		metrics: metrics.NewProviderMetrics("openmeteo"),
	}
}

// FetchForecast issues the three independent fetches and returns whatever
// subset succeeded. A fully empty payload is still a valid result; the
// normalizer substitutes defaults.
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, location models.Location) (*models.RawWeatherPayload, error) {
	payload := &models.RawWeatherPayload{}

	if current, offset, err := c.fetchCurrent(ctx, location); err != nil {
		slog.Warn("current weather fetch failed", "location", location.Name, "error", err)
	} else {
		payload.Current = current
		payload.UTCOffsetSeconds = offset
	}

	if hourly, offset, err := c.fetchHourly(ctx, location); err != nil {
		slog.Warn("hourly forecast fetch failed", "location", location.Name, "error", err)
	} else {
		payload.Hourly = hourly
		payload.UTCOffsetSeconds = offset
	}

	if daily, offset, err := c.fetchDaily(ctx, location); err != nil {
		slog.Warn("daily forecast fetch failed", "location", location.Name, "error", err)
	} else {
		payload.Daily = daily
		payload.UTCOffsetSeconds = offset
	}

	return payload, nil
}

func (c *OpenMeteoClient) fetchCurrent(ctx context.Context, location models.Location) (*models.RawCurrent, int, error) {
	query := c.baseQuery(location)
	query.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,precipitation,surface_pressure,weather_code")

	var result struct {
		UTCOffsetSeconds int                `json:"utc_offset_seconds"`
		Current          *models.RawCurrent `json:"current"`
	}
	if err := c.getJSON(ctx, query, &result); err != nil {
		return nil, 0, err
	}
	if result.Current == nil {
		return nil, 0, fmt.Errorf("response missing current block")
	}
	return result.Current, result.UTCOffsetSeconds, nil
}

func (c *OpenMeteoClient) fetchHourly(ctx context.Context, location models.Location) (*models.RawHourly, int, error) {
	query := c.baseQuery(location)
	query.Set("hourly", "temperature_2m,precipitation,weather_code")
	query.Set("forecast_hours", "24")

	var result struct {
		UTCOffsetSeconds int               `json:"utc_offset_seconds"`
		Hourly           *models.RawHourly `json:"hourly"`
	}
	if err := c.getJSON(ctx, query, &result); err != nil {
		return nil, 0, err
	}
	if result.Hourly == nil {
		return nil, 0, fmt.Errorf("response missing hourly block")
	}
	return result.Hourly, result.UTCOffsetSeconds, nil
}

func (c *OpenMeteoClient) fetchDaily(ctx context.Context, location models.Location) (*models.RawDaily, int, error) {
	query := c.baseQuery(location)
	query.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,uv_index_max,weather_code")
	query.Set("forecast_days", "5")

	var result struct {
		UTCOffsetSeconds int              `json:"utc_offset_seconds"`
		Daily            *models.RawDaily `json:"daily"`
	}
	if err := c.getJSON(ctx, query, &result); err != nil {
		return nil, 0, err
	}
	if result.Daily == nil {
		return nil, 0, fmt.Errorf("response missing daily block")
	}
	return result.Daily, result.UTCOffsetSeconds, nil
}

func (c *OpenMeteoClient) baseQuery(location models.Location) url.Values {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", location.Latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", location.Longitude))
	query.Set("temperature_unit", "fahrenheit")
	query.Set("wind_speed_unit", "mph")
	query.Set("precipitation_unit", "inch")
	query.Set("timezone", "auto")
	return query
}

func (c *OpenMeteoClient) getJSON(ctx context.Context, query url.Values, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		reqURL := fmt.Sprintf("%s/forecast?%s", c.baseURL, query.Encode())
		return http.NewRequest(http.MethodGet, reqURL, nil)
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	c.metrics.RecordRequest(time.Since(start), err)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("forecast API returned status code %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ ForecastProvider = (*OpenMeteoClient)(nil)
