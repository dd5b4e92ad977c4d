package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks product cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of product cache hits",
		},
	)

	// CacheMisses tracks product cache misses, including lookups degraded by errors
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of product cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "decode", "set", "delete", "clear", "stats"
	)

	// ClearedKeys tracks keys removed by prefix clears
	ClearedKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_cleared_keys_total",
			Help: "Total number of cache keys removed by prefix clears",
		},
	)
)
