package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for product lookups.
var (
	productLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_product_lookups_total",
		Help: "Total product lookups by source",
	}, []string{"source"}) // "cache", "database", "not_found", "error"

	productLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_product_lookup_duration_seconds",
		Help:    "Product lookup duration in seconds by source",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
	}, []string{"source"})
)
