package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weatherreport.app/config"
	"weatherreport.app/metrics"
	"weatherreport.app/models"
	"weatherreport.app/pkg/errors"
)

// GeocodingClient resolves place names through the Open-Meteo geocoding API
type GeocodingClient struct {
	baseURL string
	client  *http.Client
	metrics *metrics.ProviderMetrics
}

// NewGeocodingClient creates a new geocoding client
func NewGeocodingClient(cfg *config.ProviderConfig) *GeocodingClient {
	return &GeocodingClient{
		baseURL: cfg.GeocodingBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout()},
		metrics: metrics.NewProviderMetrics("geocoding"),
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// Resolve returns the first location matching the given name
func (c *GeocodingClient) Resolve(ctx context.Context, name string) (*models.Location, error) {
	if name == "" {
		return nil, errors.NewValidationError("location name cannot be empty")
	}

	query := url.Values{}
	query.Set("name", name)
	query.Set("count", "1")
	query.Set("language", "en")
	query.Set("format", "json")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build geocoding request", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.RecordRequest(time.Since(start), err)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to resolve location", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var result geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocoding response", err)
	}

	if len(result.Results) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("location %q not found", name))
	}

	first := result.Results[0]
	return &models.Location{
		Name:        first.Name,
		Country:     first.Country,
		AdminRegion: first.Admin1,
		Latitude:    first.Latitude,
		Longitude:   first.Longitude,
	}, nil
}

var _ GeocodingProvider = (*GeocodingClient)(nil)
