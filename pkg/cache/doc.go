// Package cache provides the product cache client with a Redis backend.
//
// The cache manager isolates callers from cache faults:
//
// - Get degrades every failure (connection error, timeout, corrupt payload) to a miss
// - Set reports failures as a non-fatal error the caller may ignore
// - Stats returns zero values when Redis cannot be queried
// - ClearByPrefix is the only operation that surfaces backend errors
// - Every Redis round trip is bounded by an explicit timeout
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(cache.Config{
//		Redis:  redisClient,
//		Logger: logging.NewLogger("cache"),
//	})
//
//	// Read through the product key scheme
//	var fields catalog.Fields
//	if manager.Get(ctx, cache.ProductKey(42), &fields) {
//		// Cache hit
//	}
//
//	// Populate with the fixed product TTL
//	_ = manager.Set(ctx, cache.ProductKey(42), fields, cache.ProductTTL)
//
// # Key Scheme
//
// Product entries live at product:<id> and nowhere else. The whole namespace
// is cleared with ClearByPrefix(ctx, cache.ProductKeyPrefix), which walks the
// keyspace with SCAN rather than KEYS so Redis is never blocked.
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - catalog_cache_hits_total - Cache hits
//   - catalog_cache_misses_total - Cache misses (including degraded lookups)
//   - catalog_cache_errors_total{operation} - Cache operation errors
//   - catalog_cache_cleared_keys_total - Keys removed by prefix clears
package cache
