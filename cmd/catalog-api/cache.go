package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Sternrassler/product-catalog/pkg/cache"
	"github.com/spf13/cobra"
)

// cacheAdmin is the part of the catalog service used by the cache commands.
type cacheAdmin interface {
	ClearCache(ctx context.Context) (int, error)
}

// productCacheAdmin clears the product namespace without a database connection.
type productCacheAdmin struct {
	manager *cache.Manager
}

func (a productCacheAdmin) ClearCache(ctx context.Context) (int, error) {
	return a.manager.ClearByPrefix(ctx, cache.ProductKeyPrefix)
}

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the product cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print Redis cache statistics as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client, err := connectRedis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			return runStats(cmd.Context(), cmd.OutOrStdout(), newCacheManager(client, cfg))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached product entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client, err := connectRedis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			return runClear(cmd.Context(), cmd.OutOrStdout(), productCacheAdmin{manager: newCacheManager(client, cfg)})
		},
	})

	return cmd
}

// statsSource is the part of the cache manager used by the stats command.
type statsSource interface {
	Stats(ctx context.Context) cache.Stats
}

// runStats prints the backend counters. The manager reports failures as an
// empty snapshot, which is surfaced as an error rather than printed as zeros.
func runStats(ctx context.Context, out io.Writer, src statsSource) error {
	stats := src.Stats(ctx)
	if stats.IsZero() {
		return errors.New("cache statistics unavailable")
	}
	return printJSON(out, stats)
}

// runClear clears the product namespace and reports the count.
func runClear(ctx context.Context, out io.Writer, admin cacheAdmin) error {
	cleared, err := admin.ClearCache(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Cleared %d cached products\n", cleared)
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
