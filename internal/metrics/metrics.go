// file: internal/metrics/metrics.go
// version: 1.0.1
// guid: e7c2a9f4-5d8b-4310-9aed-cb1876f43205

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds by path",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // ~5ms up to ~20s
	}, []string{"path"})

	cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cache_hits_total",
		Help:      "Total number of response cache hits by key prefix",
	}, []string{"prefix"})
	cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cache_misses_total",
		Help:      "Total number of response cache misses by key prefix",
	}, []string{"prefix"})
	cacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cache_invalidations_total",
		Help:      "Total number of explicit cache invalidations by key prefix",
	}, []string{"prefix"})

	storeOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "store_operations_total",
		Help:      "Total number of document store operations by collection and op",
	}, []string{"collection", "op"})
	ordersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration,
			cacheHits, cacheMisses, cacheInvalidations,
			storeOperations, ordersPlaced)
	})
}

// HTTP helpers
func IncHTTPRequest(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}
func ObserveHTTPDuration(path string, d time.Duration) {
	httpDuration.WithLabelValues(path).Observe(d.Seconds())
}

// Cache helpers
func IncCacheHit(prefix string)          { cacheHits.WithLabelValues(prefix).Inc() }
func IncCacheMiss(prefix string)         { cacheMisses.WithLabelValues(prefix).Inc() }
func IncCacheInvalidation(prefix string) { cacheInvalidations.WithLabelValues(prefix).Inc() }

// Store helpers
func IncStoreOperation(collection, op string) {
	storeOperations.WithLabelValues(collection, op).Inc()
}

// Orders
func IncOrdersPlaced() { ordersPlaced.Inc() }
