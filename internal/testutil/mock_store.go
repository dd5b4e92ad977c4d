// Package testutil provides testing utilities for the product catalog.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sternrassler/product-catalog/pkg/store"
)

// MockStore is an in-memory product store for testing.
// It records how often each operation was called.
type MockStore struct {
	mu       sync.RWMutex
	products map[int64]store.Product

	// Err, when set, is returned by every Get and List call
	Err error

	// Delay is applied before each call returns
	Delay time.Duration

	// Tracking
	GetCount  int
	ListCount int
}

// NewMockStore creates a mock store seeded with products.
func NewMockStore(products ...store.Product) *MockStore {
	m := &MockStore{
		products: make(map[int64]store.Product),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

// Put inserts or replaces a product, bypassing any cache.
func (m *MockStore) Put(p store.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// SetError configures the error returned by subsequent calls.
func (m *MockStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// Get implements the product store contract.
func (m *MockStore) Get(ctx context.Context, id int64) (*store.Product, error) {
	m.mu.Lock()
	m.GetCount++
	err := m.Err
	delay := m.Delay
	p, ok := m.products[id]
	m.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

// List implements the product store contract in id order.
func (m *MockStore) List(ctx context.Context, limit int) ([]store.Product, error) {
	m.mu.Lock()
	m.ListCount++
	err := m.Err
	delay := m.Delay
	products := make([]store.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	m.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if limit < len(products) {
		products = products[:max(limit, 0)]
	}
	return products, nil
}

// Ping always succeeds unless Err is set.
func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Err
}

// GetCalls returns the number of Get calls.
func (m *MockStore) GetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.GetCount
}

// ListCalls returns the number of List calls.
func (m *MockStore) ListCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ListCount
}

// Reset clears all tracking counters.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCount = 0
	m.ListCount = 0
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewWidget creates the canonical sample product used across tests.
func NewWidget() store.Product {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return store.Product{
		ID:        1,
		Name:      "Widget",
		Price:     9.99,
		Category:  StringPtr("Tools"),
		CreatedAt: &created,
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
