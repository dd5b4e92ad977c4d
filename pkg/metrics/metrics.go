// Package metrics provides the Prometheus registry reference for the product catalog.
// Metrics are defined next to the code that records them (cache, catalog)
// and registered through promauto on the default registry.
//
// This package documents them and exposes the registry and handler used by /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the catalog.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the registry read by Handler.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the HTTP handler exposing all registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - catalog_cache_hits_total (Counter): Product cache hits
//   - catalog_cache_misses_total (Counter): Product cache misses, including degraded lookups
//   - catalog_cache_errors_total{operation} (Counter): Cache errors by operation
//     (get, decode, set, delete, clear, stats)
//   - catalog_cache_cleared_keys_total (Counter): Keys removed by prefix clears
//
// Lookup Metrics (pkg/catalog):
//   - catalog_product_lookups_total{source} (Counter): Lookups by outcome
//     (cache, database, not_found, error)
//   - catalog_product_lookup_duration_seconds{source} (Histogram): Lookup latency by source
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(catalog_cache_hits_total[5m])) /
//   (sum(rate(catalog_cache_hits_total[5m])) + sum(rate(catalog_cache_misses_total[5m])))
//
//   # Degraded cache operations
//   rate(catalog_cache_errors_total[5m])
//
//   # P95 latency of cache hits vs database reads
//   histogram_quantile(0.95, sum by (le, source) (rate(catalog_product_lookup_duration_seconds_bucket[5m])))
