package cache

import (
	"strconv"
	"time"
)

const (
	// ProductKeyPrefix is the namespace shared by every cached product entry.
	ProductKeyPrefix = "product:"

	// ProductTTL is the lifetime of a cached product snapshot.
	ProductTTL = time.Hour
)

// ProductKey returns the cache key for a single product.
// Format: product:<id>
//
// Example:
//
//	product:42
func ProductKey(id int64) string {
	return ProductKeyPrefix + strconv.FormatInt(id, 10)
}
