// Package store provides the durable product store backed by PostgreSQL.
//
// The products table is owned outside this service; the store only reads it.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no product row matches the requested id.
var ErrNotFound = errors.New("product not found")

// Product is a single row of the products table.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
