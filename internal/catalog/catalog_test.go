package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	calls    int
	err      error
}

func (m *mockRepository) GetProduct(_ context.Context, code string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[code]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func repoWith(codes ...string) *mockRepository {
	products := make(map[string]*domain.Product)
	for _, code := range codes {
		products[code] = &domain.Product{
			Code:      code,
			Name:      "product " + code,
			UnitPrice: decimal.RequireFromString("1.00"),
			SellMode:  domain.SellByQuantity,
		}
	}
	return &mockRepository{products: products}
}

func TestResolve_ExactMatch(t *testing.T) {
	cat := New(repoWith("ABC-1"), NewMemoryCache())

	p, err := cat.Resolve(context.Background(), "ABC-1")
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", p.Code)
}

func TestResolve_PadsToEAN13(t *testing.T) {
	// Catalog holds the padded form; the scanner stripped the zeros.
	cat := New(repoWith("0000000000123"), NewMemoryCache())

	p, err := cat.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "0000000000123", p.Code)
}

func TestResolve_StripsLeadingZeros(t *testing.T) {
	// Catalog holds the short form; the scanner padded it.
	cat := New(repoWith("123"), NewMemoryCache())

	p, err := cat.Resolve(context.Background(), "0000000000123")
	require.NoError(t, err)
	assert.Equal(t, "123", p.Code)
}

func TestResolve_ExactWinsOverFallback(t *testing.T) {
	cat := New(repoWith("123", "0000000000123"), NewMemoryCache())

	p, err := cat.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", p.Code)
}

func TestResolve_NotFound(t *testing.T) {
	cat := New(repoWith("123"), NewMemoryCache())

	_, err := cat.Resolve(context.Background(), "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestResolve_NoFallbackForNonDigits(t *testing.T) {
	repo := repoWith("A1")
	cat := New(repo, NewMemoryCache())

	_, err := cat.Resolve(context.Background(), "XYZ")
	assert.ErrorIs(t, err, ErrProductNotFound)
	// Only the exact lookup, no pad/strip attempts.
	assert.Equal(t, 1, repo.calls)
}

func TestResolve_RepositoryErrorPropagates(t *testing.T) {
	repo := &mockRepository{err: errors.New("store unavailable")}
	cat := New(repo, NewMemoryCache())

	_, err := cat.Resolve(context.Background(), "123")
	assert.EqualError(t, err, "store unavailable")
}

func TestResolve_CacheHitSkipsRepository(t *testing.T) {
	repo := repoWith("123")
	cache := NewMemoryCache()
	cat := New(repo, cache)

	require.NoError(t, cache.Set(context.Background(), "123", repo.products["123"]))

	p, err := cat.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", p.Code)
	assert.Equal(t, 0, repo.calls)
}

func TestResolve_CacheSharedAcrossScanForms(t *testing.T) {
	repo := repoWith("123")
	cache := NewMemoryCache()
	cat := New(repo, cache)

	require.NoError(t, cache.Set(context.Background(), "123", repo.products["123"]))

	// A padded scan finds the entry cached under the stored short code.
	p, err := cat.Resolve(context.Background(), "0000000000123")
	require.NoError(t, err)
	assert.Equal(t, "123", p.Code)
	assert.Equal(t, 0, repo.calls)
}

func TestInvalidate_DropsFallbackResolvedEntry(t *testing.T) {
	repo := repoWith("0000000000123")
	cache := NewMemoryCache()
	cat := New(repo, cache)

	require.NoError(t, cache.Set(context.Background(), "0000000000123", repo.products["0000000000123"]))

	p, err := cat.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "0000000000123", p.Code)
	assert.Equal(t, 0, repo.calls)

	// Price edit on the stored code, then the same short scan must see it.
	cat.Invalidate(context.Background(), "0000000000123")
	repo.mu.Lock()
	repo.products["0000000000123"].UnitPrice = decimal.RequireFromString("2.00")
	repo.mu.Unlock()

	p, err = cat.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("2.00")))
	assert.Equal(t, 2, repo.calls)
}

func TestInvalidate_DropsCachedCode(t *testing.T) {
	repo := repoWith("123")
	cache := NewMemoryCache()
	cat := New(repo, cache)

	require.NoError(t, cache.Set(context.Background(), "123", repo.products["123"]))
	cat.Invalidate(context.Background(), "123")

	_, err := cache.Get(context.Background(), "123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
