// Package metrics exposes prometheus instrumentation for the forecast cache
// and outbound provider calls
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type collector struct {
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	cacheRequests    *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
}

var (
	globalCollector *collector
	collectorOnce   sync.Once
)

func getCollector() *collector {
	collectorOnce.Do(func() {
		globalCollector = &collector{
			cacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_report_cache_hits_total",
					Help: "The total number of forecast cache hits",
				},
				[]string{"cache_type"},
			),
			cacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_report_cache_misses_total",
					Help: "The total number of forecast cache misses",
				},
				[]string{"cache_type"},
			),
			cacheRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_report_cache_requests_total",
					Help: "The total number of forecast cache requests",
				},
				[]string{"cache_type"},
			),
			providerRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_report_provider_requests_total",
					Help: "The total number of outbound provider requests",
				},
				[]string{"provider", "outcome"},
			),
			providerLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_report_provider_duration_seconds",
					Help:    "Outbound provider request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
		}
	})
	return globalCollector
}

// CacheMetrics records hit/miss counters for one cache backend
type CacheMetrics struct {
	cacheType string
	collector *collector
}

// NewCacheMetrics creates metrics labeled with the backend type
func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

// RecordHit counts a cache hit
func (m *CacheMetrics) RecordHit() {
	m.collector.cacheHits.WithLabelValues(m.cacheType).Inc()
	m.collector.cacheRequests.WithLabelValues(m.cacheType).Inc()
}

// RecordMiss counts a cache miss
func (m *CacheMetrics) RecordMiss() {
	m.collector.cacheMisses.WithLabelValues(m.cacheType).Inc()
	m.collector.cacheRequests.WithLabelValues(m.cacheType).Inc()
}

// ProviderMetrics records outbound request counters for one provider
type ProviderMetrics struct {
	provider  string
	collector *collector
}

// NewProviderMetrics creates metrics labeled with the provider name
func NewProviderMetrics(provider string) *ProviderMetrics {
	return &ProviderMetrics{
		provider:  provider,
		collector: getCollector(),
	}
}

// RecordRequest counts a provider call and its duration
func (m *ProviderMetrics) RecordRequest(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.collector.providerRequests.WithLabelValues(m.provider, outcome).Inc()
	m.collector.providerLatency.WithLabelValues(m.provider).Observe(duration.Seconds())
}
