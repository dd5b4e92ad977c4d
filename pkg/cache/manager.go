package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultTTL is used by Set when the caller passes a non-positive TTL
	DefaultTTL = 3600 * time.Second

	// DefaultTimeout bounds every single Redis round trip
	DefaultTimeout = 2 * time.Second

	// scanBatchSize is the COUNT hint used while clearing a prefix
	scanBatchSize = 100
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Config holds the cache manager configuration.
type Config struct {
	// Redis client shared by the whole process
	Redis *redis.Client

	// Logger receives hit/miss/error events
	Logger zerolog.Logger

	// Timeout for each Redis operation (default: DefaultTimeout)
	Timeout time.Duration
}

// Manager handles caching operations with Redis backend.
//
// Read and write faults are contained here: Get degrades to a miss, Set
// reports an error the caller may ignore, Stats returns zero values.
// ClearByPrefix is the only operation that surfaces backend failures.
type Manager struct {
	redis   *redis.Client
	logger  zerolog.Logger
	timeout time.Duration
}

// NewManager creates a new cache manager with Redis backend.
func NewManager(cfg Config) *Manager {
	if cfg.Redis == nil {
		panic("redis client cannot be nil")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Manager{
		redis:   cfg.Redis,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
	}
}

func (m *Manager) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

// Get looks up key and decodes the stored JSON into dst.
// Returns false on a miss, on any backend error and on undecodable payloads.
func (m *Manager) Get(ctx context.Context, key string, dst any) bool {
	data, err := m.getBytes(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			m.logger.Debug().Str("key", key).Msg("Cache miss")
		} else {
			m.logger.Error().Err(err).Str("key", key).Msg("Cache get failed, treating as miss")
		}
		CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		CacheErrors.WithLabelValues("decode").Inc()
		CacheMisses.Inc()
		m.logger.Error().
			Err(fmt.Errorf("%w: %v", ErrInvalidEntry, err)).
			Str("key", key).
			Msg("Cache entry could not be decoded, treating as miss")
		return false
	}

	CacheHits.Inc()
	m.logger.Debug().Str("key", key).Msg("Cache hit")
	return true
}

func (m *Manager) getBytes(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	data, err := m.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores value as JSON under key with the given TTL.
// A non-positive ttl falls back to DefaultTTL. The returned error is
// informational: callers on the read path are expected to ignore it.
func (m *Manager) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		m.logger.Error().Err(err).Str("key", key).Msg("Cache entry could not be encoded")
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	if err := m.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		m.logger.Error().Err(err).Str("key", key).Msg("Cache set failed")
		return fmt.Errorf("redis set: %w", err)
	}

	m.logger.Debug().
		Str("key", key).
		Dur("ttl", ttl).
		Msg("Cached entry")
	return nil
}

// Delete removes a single key.
// Returns true only when a key was actually removed.
func (m *Manager) Delete(ctx context.Context, key string) bool {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	removed, err := m.redis.Del(ctx, key).Result()
	if err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		m.logger.Error().Err(err).Str("key", key).Msg("Cache delete failed")
		return false
	}

	m.logger.Debug().Str("key", key).Bool("removed", removed > 0).Msg("Cache key deleted")
	return removed > 0
}

// ClearByPrefix deletes every key starting with prefix and returns how many
// keys Redis reported as removed. Keys written concurrently with the scan may
// or may not be included.
func (m *Manager) ClearByPrefix(ctx context.Context, prefix string) (int, error) {
	var cleared int64
	var cursor uint64

	for {
		keys, next, err := m.scan(ctx, cursor, prefix+"*")
		if err != nil {
			CacheErrors.WithLabelValues("clear").Inc()
			m.logger.Error().Err(err).Str("prefix", prefix).Msg("Cache clear failed")
			return int(cleared), fmt.Errorf("redis scan: %w", err)
		}

		if len(keys) > 0 {
			removed, err := m.del(ctx, keys)
			if err != nil {
				CacheErrors.WithLabelValues("clear").Inc()
				m.logger.Error().Err(err).Str("prefix", prefix).Msg("Cache clear failed")
				return int(cleared), fmt.Errorf("redis del: %w", err)
			}
			cleared += removed
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	ClearedKeys.Add(float64(cleared))
	if cleared == 0 {
		m.logger.Info().Str("prefix", prefix).Msg("No cache keys to clear")
	} else {
		m.logger.Info().Str("prefix", prefix).Int64("cleared", cleared).Msg("Cleared cache keys")
	}

	return int(cleared), nil
}

func (m *Manager) scan(ctx context.Context, cursor uint64, match string) ([]string, uint64, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	return m.redis.Scan(ctx, cursor, match, scanBatchSize).Result()
}

func (m *Manager) del(ctx context.Context, keys []string) (int64, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	return m.redis.Del(ctx, keys...).Result()
}

// Stats returns aggregate counters from Redis INFO.
// Returns the zero Stats when the backend cannot be queried.
func (m *Manager) Stats(ctx context.Context) Stats {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	info, err := m.redis.Info(ctx).Result()
	if err != nil {
		CacheErrors.WithLabelValues("stats").Inc()
		m.logger.Error().Err(err).Msg("Cache stats unavailable")
		return Stats{}
	}

	return parseInfo(info)
}

// Ping checks that Redis answers within the operation timeout.
func (m *Manager) Ping(ctx context.Context) error {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	if err := m.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
