package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
)

// Cache holds resolved products keyed by their stored catalog code.
type Cache interface {
	Get(ctx context.Context, code string) (*domain.Product, error)
	Set(ctx context.Context, code string, product *domain.Product) error
	Delete(ctx context.Context, code string) error
}

var ErrCacheMiss = errors.New("cache miss")

// MemoryCache is a process-local Cache for single-station setups and tests.
type MemoryCache struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{products: make(map[string]*domain.Product)}
}

func (m *MemoryCache) Get(_ context.Context, code string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[code]
	if !ok {
		return nil, ErrCacheMiss
	}
	return product, nil
}

func (m *MemoryCache) Set(_ context.Context, code string, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[code] = product
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, code)
	return nil
}
