package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/product-catalog/pkg/catalog"
	"github.com/Sternrassler/product-catalog/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// ProductService is the catalog behaviour served over HTTP.
type ProductService interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Envelope, error)
	ListProducts(ctx context.Context, limit int) ([]catalog.Envelope, error)
	CacheStatistics(ctx context.Context) catalog.StatsReport
	ClearCache(ctx context.Context) (int, error)
	Now() float64
}

// Checker is a dependency probed by /ready.
type Checker interface {
	Ping(ctx context.Context) error
}

// Config holds the HTTP API dependencies.
type Config struct {
	Service ProductService

	// Checks are probed by /ready, keyed by dependency name.
	Checks map[string]Checker

	// ReadyTimeout bounds the whole readiness probe (default: 2s).
	ReadyTimeout time.Duration

	Logger  zerolog.Logger
	Version string
}

// App serves the product catalog API.
type App struct {
	svc          ProductService
	checks       map[string]Checker
	readyTimeout time.Duration
	logger       zerolog.Logger
	version      string
}

// NewApp creates the HTTP application.
func NewApp(cfg Config) *App {
	if cfg.Service == nil {
		panic("product service cannot be nil")
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = 2 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	return &App{
		svc:          cfg.Service,
		checks:       cfg.Checks,
		readyTimeout: cfg.ReadyTimeout,
		logger:       cfg.Logger,
		version:      cfg.Version,
	}
}

// Handler returns the routed handler wrapped with CORS, request ids and access logging.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.rootHandler)
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /ready", a.readyHandler)
	mux.HandleFunc("GET /products", a.listProductsHandler)
	mux.HandleFunc("GET /products/{id}", a.getProductHandler)
	mux.HandleFunc("GET /cache/stats", a.cacheStatsHandler)
	mux.HandleFunc("DELETE /cache/clear", a.clearCacheHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	return WithCORS(WithLogging(a.logger, mux))
}

type rootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (a *App) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Product Catalog API",
		Version: a.version,
		Endpoints: map[string]string{
			"get_product":   "/products/{id}",
			"list_products": "/products?limit=N",
			"cache_stats":   "/cache/stats",
			"clear_cache":   "/cache/clear",
			"health":        "/health",
			"ready":         "/ready",
			"metrics":       "/metrics",
		},
	})
}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Timestamp: a.svc.Now()})
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.readyTimeout)
	defer cancel()

	resp := readyResponse{Status: "ready", Checks: make(map[string]string, len(a.checks))}
	status := http.StatusOK
	for name, check := range a.checks {
		if err := check.Ping(ctx); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("dependency", name).Msg("Readiness check failed")
			resp.Checks[name] = "unavailable"
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	writeJSON(w, status, resp)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "product id must be an integer")
		return
	}

	env, err := a.svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Int64("product_id", id).Msg("Product lookup failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, env)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit := catalog.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	products, err := a.svc.ListProducts(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("limit", limit).Msg("Product list failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (a *App) cacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.CacheStatistics(r.Context()))
}

type clearResponse struct {
	Message     string  `json:"message"`
	ClearedKeys int     `json:"cleared_keys"`
	Timestamp   float64 `json:"timestamp"`
}

func (a *App) clearCacheHandler(w http.ResponseWriter, r *http.Request) {
	cleared, err := a.svc.ClearCache(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to clear cache")
		writeError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	writeJSON(w, http.StatusOK, clearResponse{
		Message:     "Cache cleared successfully",
		ClearedKeys: cleared,
		Timestamp:   a.svc.Now(),
	})
}
