package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records upstream fetch and cache behavior for the catalog.
type CatalogMetrics struct {
	fetchDuration *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of upstream catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failures",
		Help: "Upstream catalog fetches that failed or returned a non-2xx status.",
	}, []string{"kind"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits",
		Help: "Catalog responses served from the cache.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses",
		Help: "Catalog requests that had to go to the upstream.",
	})
	reg.MustRegister(fetchDuration, fetchFailures, cacheHits, cacheMisses)
	return &CatalogMetrics{
		fetchDuration: fetchDuration,
		fetchFailures: fetchFailures,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
	}
}

// ObserveFetch records the duration of an upstream fetch for the given kind.
func (c *CatalogMetrics) ObserveFetch(kind string, duration time.Duration) {
	if c == nil || c.fetchDuration == nil {
		return
	}
	c.fetchDuration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncFetchFailure increments the failure counter for the given kind.
func (c *CatalogMetrics) IncFetchFailure(kind string) {
	if c == nil || c.fetchFailures == nil {
		return
	}
	c.fetchFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCacheHit increments the cache hit counter.
func (c *CatalogMetrics) IncCacheHit() {
	if c == nil || c.cacheHits == nil {
		return
	}
	c.cacheHits.Inc()
}

// IncCacheMiss increments the cache miss counter.
func (c *CatalogMetrics) IncCacheMiss() {
	if c == nil || c.cacheMisses == nil {
		return
	}
	c.cacheMisses.Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
