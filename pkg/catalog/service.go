// Package catalog implements the cache-aside read path for products and the
// cache administration operations exposed next to it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/product-catalog/pkg/cache"
	"github.com/Sternrassler/product-catalog/pkg/store"
	"github.com/rs/zerolog"
)

// DefaultListLimit is the list size used when the caller does not ask for one.
const DefaultListLimit = 10

// ProductCache is the cache client the service reads through.
// Implementations contain their own faults, see cache.Manager.
type ProductCache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ClearByPrefix(ctx context.Context, prefix string) (int, error)
	Stats(ctx context.Context) cache.Stats
}

// ProductStore is the durable source of truth for products.
type ProductStore interface {
	Get(ctx context.Context, id int64) (*store.Product, error)
	List(ctx context.Context, limit int) ([]store.Product, error)
}

// StatsReport is a cache statistics snapshot with the time it was taken.
type StatsReport struct {
	CacheStats cache.Stats `json:"cache_stats"`
	Timestamp  float64     `json:"timestamp"`
}

// Service serves product reads through the cache.
type Service struct {
	cache  ProductCache
	store  ProductStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a product service.
func NewService(productCache ProductCache, productStore ProductStore, logger zerolog.Logger) *Service {
	if productCache == nil || productStore == nil {
		panic("cache and store are required")
	}
	return &Service{
		cache:  productCache,
		store:  productStore,
		logger: logger,
		now:    time.Now,
	}
}

// GetProduct returns a product, preferring the cache and populating it on a miss.
// Returns ErrNotFound if the product does not exist in the store.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Envelope, error) {
	start := s.now()
	key := cache.ProductKey(id)

	s.logger.Debug().Int64("product_id", id).Msg("Received product request")

	// Step 1: Cache. An entry for another id (or a bare null/{}) is corrupt
	// and treated as a miss; the write-through below replaces it.
	var fields Fields
	if s.cache.Get(ctx, key, &fields) {
		if fields.ID == id {
			elapsed := s.since(start)
			s.observe(SourceCache, elapsed)
			s.logger.Debug().Int64("product_id", id).Msg("Returning cached product")
			return newEnvelope(fields, SourceCache, elapsed), nil
		}
		s.logger.Error().
			Int64("product_id", id).
			Int64("cached_id", fields.ID).
			Str("key", key).
			Msg("Cached entry does not match product, treating as miss")
	}

	// Step 2: Store
	s.logger.Info().Int64("product_id", id).Msg("Cache miss, querying database")
	product, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			productLookupsTotal.WithLabelValues("not_found").Inc()
			s.logger.Warn().Int64("product_id", id).Msg("Product not found in database")
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		productLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Int64("product_id", id).Msg("Product store query failed")
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	// Step 3: Populate cache (failure is non-fatal)
	fields = FieldsFromProduct(*product)
	if err := s.cache.Set(ctx, key, fields, cache.ProductTTL); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to cache product, serving from database")
	}

	elapsed := s.since(start)
	s.observe(SourceDatabase, elapsed)
	s.logger.Debug().Int64("product_id", id).Msg("Returning product from database")
	return newEnvelope(fields, SourceDatabase, elapsed), nil
}

// ListProducts returns up to limit products straight from the store.
// The cache is neither read nor populated. A non-positive limit yields an
// empty list without a store query.
func (s *Service) ListProducts(ctx context.Context, limit int) ([]Envelope, error) {
	if limit <= 0 {
		return []Envelope{}, nil
	}

	products, err := s.store.List(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("Product store list failed")
		return nil, fmt.Errorf("list products: %w", err)
	}

	if len(products) > limit {
		products = products[:limit]
	}

	envelopes := make([]Envelope, 0, len(products))
	for _, p := range products {
		envelopes = append(envelopes, Envelope{Fields: FieldsFromProduct(p)})
	}
	return envelopes, nil
}

// CacheStatistics returns the cache backend counters.
func (s *Service) CacheStatistics(ctx context.Context) StatsReport {
	return StatsReport{
		CacheStats: s.cache.Stats(ctx),
		Timestamp:  unixSeconds(s.now()),
	}
}

// ClearCache removes every cached product and returns how many entries were removed.
// Backend failures are returned wrapped in ErrInternal.
func (s *Service) ClearCache(ctx context.Context) (int, error) {
	cleared, err := s.cache.ClearByPrefix(ctx, cache.ProductKeyPrefix)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear cache")
		return 0, fmt.Errorf("%w: clear cache: %v", ErrInternal, err)
	}

	s.logger.Info().Int("cleared_keys", cleared).Msg("Product cache cleared")
	return cleared, nil
}

// Now returns the service clock reading as fractional Unix seconds.
func (s *Service) Now() float64 {
	return unixSeconds(s.now())
}

func (s *Service) since(start time.Time) time.Duration {
	return s.now().Sub(start)
}

func (s *Service) observe(source Source, elapsed time.Duration) {
	productLookupsTotal.WithLabelValues(string(source)).Inc()
	productLookupDuration.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
