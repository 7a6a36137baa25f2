// Package cache provides the forecast payload cache with memory and redis
// backends
package cache

import (
	"context"
	"encoding/json"
	"time"

	"weatherreport.app/models"
)

// GenericCache defines generic byte-level cache operations
type GenericCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// ForecastCache wraps a generic cache with raw-payload marshaling
type ForecastCache struct {
	cache GenericCache
}

// NewForecastCache creates a forecast cache over the given backend
func NewForecastCache(cache GenericCache) *ForecastCache {
	return &ForecastCache{cache: cache}
}

// Get returns the cached payload for the key, if present and decodable
func (f *ForecastCache) Get(ctx context.Context, key string) (*models.RawWeatherPayload, bool) {
	data, found := f.cache.Get(ctx, key)
	if !found {
		return nil, false
	}

	var payload models.RawWeatherPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

// Set stores the payload under the key for the given TTL
func (f *ForecastCache) Set(ctx context.Context, key string, payload *models.RawWeatherPayload, ttl time.Duration) {
	if payload == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	f.cache.Set(ctx, key, data, ttl)
}

// Delete removes the key
func (f *ForecastCache) Delete(ctx context.Context, key string) {
	f.cache.Delete(ctx, key)
}

// Clear empties the backend
func (f *ForecastCache) Clear(ctx context.Context) {
	f.cache.Clear(ctx)
}
