package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds every store query
	DefaultTimeout = 5 * time.Second

	selectColumns = `id, name, description, price, category, created_at, updated_at`
)

// Querier is the subset of pgx used by the store. *pgxpool.Pool satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres reads products from a PostgreSQL database.
type Postgres struct {
	db      Querier
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPostgres creates a store on top of an existing pool or connection.
func NewPostgres(db Querier, timeout time.Duration, logger zerolog.Logger) *Postgres {
	if db == nil {
		panic("database cannot be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Postgres{
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

// Connect opens a pgx pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Get returns the product with the given id, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	row := p.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.logger.Debug().Int64("product_id", id).Msg("Product not found in database")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}

	return product, nil
}

// List returns up to limit products in id order.
func (p *Postgres) List(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		return []Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.Query(ctx, `SELECT `+selectColumns+` FROM products ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, min(limit, 100))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
