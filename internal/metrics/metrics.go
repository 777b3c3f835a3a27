// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface used by services and middleware
type Recorder interface {
	RecordCacheHit(entity string)
	RecordCacheMiss(entity string)
	RecordCacheError(entity, op string)
	RecordRequest(method, route string, status int, duration time.Duration)
}

// Collector records metrics into Prometheus collectors
type Collector struct {
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	cacheErrors     *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_hits_total",
			Help: "Point lookups served from the cache",
		}, []string{"entity"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_misses_total",
			Help: "Point lookups that fell through to the database",
		}, []string{"entity"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_errors_total",
			Help: "Failed cache operations",
		}, []string{"entity", "op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "content_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheErrors,
		c.requests,
		c.requestDuration,
	)

	return c
}

// RecordCacheHit counts a cache hit
func (c *Collector) RecordCacheHit(entity string) {
	c.cacheHits.WithLabelValues(entity).Inc()
}

// RecordCacheMiss counts a cache miss
func (c *Collector) RecordCacheMiss(entity string) {
	c.cacheMisses.WithLabelValues(entity).Inc()
}

// RecordCacheError counts a failed cache get, set or delete
func (c *Collector) RecordCacheError(entity, op string) {
	c.cacheErrors.WithLabelValues(entity, op).Inc()
}

// RecordRequest counts a served HTTP request and observes its latency
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every metric
type Nop struct{}

func (Nop) RecordCacheHit(string) {}
func (Nop) RecordCacheMiss(string) {}
func (Nop) RecordCacheError(string, string) {}
func (Nop) RecordRequest(string, string, int, time.Duration) {}
