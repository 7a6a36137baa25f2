package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"weatherreport.app/metrics"
	"weatherreport.app/models"
	"weatherreport.app/providers/cache"
)

// ForecastCacheProxy caches forecast payloads in front of the real provider,
// keyed by coordinates
type ForecastCacheProxy struct {
	realProvider ForecastProvider
	cache        *cache.ForecastCache
	cacheTTL     time.Duration
	metrics      *metrics.CacheMetrics
}

// NewForecastCacheProxy creates a caching proxy around the given provider
func NewForecastCacheProxy(realProvider ForecastProvider, backend cache.GenericCache, cacheTTL time.Duration, cacheType string) *ForecastCacheProxy {
	return &ForecastCacheProxy{
		realProvider: realProvider,
		cache:        cache.NewForecastCache(backend),
		cacheTTL:     cacheTTL,
		metrics:      metrics.NewCacheMetrics(cacheType),
	}
}

// FetchForecast serves from cache when possible; misses go to the real
// provider and the result is stored for the configured TTL
func (p *ForecastCacheProxy) FetchForecast(ctx context.Context, location models.Location) (*models.RawWeatherPayload, error) {
	key := p.cacheKey(location)

	if cached, found := p.cache.Get(ctx, key); found {
		p.metrics.RecordHit()
		slog.Debug("forecast cache hit", "location", location.Name)
		return cached, nil
	}

	p.metrics.RecordMiss()
	slog.Debug("forecast cache miss", "location", location.Name)

	payload, err := p.realProvider.FetchForecast(ctx, location)
	if err != nil {
		return nil, err
	}

	p.cache.Set(ctx, key, payload, p.cacheTTL)
	return payload, nil
}

func (p *ForecastCacheProxy) cacheKey(location models.Location) string {
	return fmt.Sprintf("forecast:%.4f:%.4f", location.Latitude, location.Longitude)
}

var _ ForecastProvider = (*ForecastCacheProxy)(nil)
