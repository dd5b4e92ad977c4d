package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sternrassler/product-catalog/internal/config"
	"github.com/Sternrassler/product-catalog/pkg/cache"
	"github.com/Sternrassler/product-catalog/pkg/catalog"
	"github.com/Sternrassler/product-catalog/pkg/logging"
	"github.com/Sternrassler/product-catalog/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

// options are the command line overrides applied on top of the environment.
type options struct {
	logLevel string
	httpAddr string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "catalog-api",
		Short:         "Product catalog API with a Redis cache-aside read path",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newCacheCmd(opts))
	return root
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Load()
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.httpAddr != "" {
		cfg.HTTPAddr = opts.httpAddr
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	logging.Setup(logging.Config{
		Level:   level,
		Pretty:  cfg.LogPretty,
		Output:  os.Stderr,
		Service: "catalog-api",
		Version: version,
	})
	return cfg, nil
}

// connectRedis builds the process-wide Redis client and checks it answers.
func connectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	redisOpts, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.CacheTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", redisOpts.Addr, err)
	}
	return client, nil
}

// newCacheManager wraps the Redis client in the product cache manager.
func newCacheManager(client *redis.Client, cfg config.Config) *cache.Manager {
	return cache.NewManager(cache.Config{
		Redis:   client,
		Logger:  logging.NewLogger("cache"),
		Timeout: cfg.CacheTimeout,
	})
}

// newService wires the catalog service on top of the shared backends.
func newService(manager *cache.Manager, pool *pgxpool.Pool, cfg config.Config) (*catalog.Service, *store.Postgres) {
	productStore := store.NewPostgres(pool, cfg.StoreTimeout, logging.NewLogger("store"))
	return catalog.NewService(manager, productStore, logging.NewLogger("catalog")), productStore
}
