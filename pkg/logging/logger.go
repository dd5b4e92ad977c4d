// Package logging configures the process-wide zerolog logger and derives
// per-component loggers from it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written. Use ParseLevel for LOG_LEVEL values.
	Level zerolog.Level

	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool

	// Output receives log lines (default: os.Stderr).
	Output io.Writer

	// Service and Version are stamped on every entry when set.
	Service string
	Version string
}

// ParseLevel parses a level name as given in LOG_LEVEL or --log-level.
// Matching is case-insensitive, an empty name means info and "warning" is
// accepted for warn.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Setup installs the global logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	lctx := zerolog.New(output).With().Timestamp()
	if cfg.Service != "" {
		lctx = lctx.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		lctx = lctx.Str("version", cfg.Version)
	}

	log.Logger = lctx.Logger()
	return log.Logger
}

// NewLogger returns the global logger tagged with a component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Levels used across the service:
//
// Debug: cache hit/miss per key, product lookup flow.
// Info: cache misses falling through to the database, cache clears,
// startup/shutdown, the HTTP access log.
// Warn: product not found, cache writes that failed while the response
// was still served from the database.
// Error: cache backend unavailable or corrupt entries (degraded to miss),
// product store failures, failed cache clears.
//
// Common fields: component, key, product_id, ttl, cleared_keys, request_id.
