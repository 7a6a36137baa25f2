package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherreport.app/models"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		c.Set(ctx, "k1", []byte("v1"), time.Minute)

		val, found := c.Get(ctx, "k1")
		assert.True(t, found)
		assert.Equal(t, []byte("v1"), val)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, found := c.Get(ctx, "missing")
		assert.False(t, found)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		c.Set(ctx, "short", []byte("v"), 50*time.Millisecond)

		_, found := c.Get(ctx, "short")
		assert.True(t, found)

		time.Sleep(100 * time.Millisecond)

		_, found = c.Get(ctx, "short")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "gone", []byte("v"), time.Minute)
		c.Delete(ctx, "gone")

		_, found := c.Get(ctx, "gone")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		c.Set(ctx, "a", []byte("1"), time.Minute)
		c.Set(ctx, "b", []byte("2"), time.Minute)
		c.Clear(ctx)

		_, found := c.Get(ctx, "a")
		assert.False(t, found)
		_, found = c.Get(ctx, "b")
		assert.False(t, found)
	})

	t.Run("nil value ignored", func(t *testing.T) {
		c.Set(ctx, "nil", nil, time.Minute)

		_, found := c.Get(ctx, "nil")
		assert.False(t, found)
	})
}

func TestRedisCache(t *testing.T) {
	server := miniredis.RunT(t)

	c, err := NewRedisCache(&RedisCacheConfig{
		Addr:         server.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		c.Set(ctx, "k1", []byte("v1"), time.Minute)

		val, found := c.Get(ctx, "k1")
		assert.True(t, found)
		assert.Equal(t, []byte("v1"), val)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		c.Set(ctx, "short", []byte("v"), time.Second)
		server.FastForward(2 * time.Second)

		_, found := c.Get(ctx, "short")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "gone", []byte("v"), time.Minute)
		c.Delete(ctx, "gone")

		_, found := c.Get(ctx, "gone")
		assert.False(t, found)
	})
}

func TestRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(&RedisCacheConfig{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestForecastCache_RoundTrip(t *testing.T) {
	backend := NewMemoryCache()
	defer backend.Stop()
	fc := NewForecastCache(backend)
	ctx := context.Background()

	payload := &models.RawWeatherPayload{
		Current: &models.RawCurrent{Temperature: 72.4, WeatherCode: 2},
		Daily: &models.RawDaily{
			Time:    []string{"2025-06-16"},
			MaxTemp: []float64{75},
		},
	}

	fc.Set(ctx, "forecast:33.7490:-84.3880", payload, time.Minute)

	got, found := fc.Get(ctx, "forecast:33.7490:-84.3880")
	require.True(t, found)
	assert.Equal(t, 72.4, got.Current.Temperature)
	assert.Equal(t, []float64{75}, got.Daily.MaxTemp)
	assert.Nil(t, got.Hourly)
}

func TestForecastCache_MissAndCorruptEntry(t *testing.T) {
	backend := NewMemoryCache()
	defer backend.Stop()
	fc := NewForecastCache(backend)
	ctx := context.Background()

	_, found := fc.Get(ctx, "missing")
	assert.False(t, found)

	// A corrupt entry must read as a miss, never an error
	backend.Set(ctx, "bad", []byte("{not json"), time.Minute)
	_, found = fc.Get(ctx, "bad")
	assert.False(t, found)
}
