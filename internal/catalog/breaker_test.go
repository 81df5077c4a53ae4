package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct {
	err error
}

func (f failingCache) Get(context.Context, string) (*domain.Product, error) {
	return nil, f.err
}
func (f failingCache) Set(context.Context, string, *domain.Product) error { return f.err }
func (f failingCache) Delete(context.Context, string) error               { return f.err }

func TestBreakerCache_PassesThrough(t *testing.T) {
	inner := NewMemoryCache()
	bc := NewBreakerCache(inner)
	ctx := context.Background()

	p := &domain.Product{Code: "123"}
	require.NoError(t, bc.Set(ctx, "123", p))

	got, err := bc.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "123", got.Code)

	require.NoError(t, bc.Delete(ctx, "123"))
	_, err = bc.Get(ctx, "123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestBreakerCache_MissesDoNotTrip(t *testing.T) {
	bc := NewBreakerCache(NewMemoryCache())
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		_, err := bc.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrCacheMiss)
	}
}

func TestBreakerCache_OpensAfterConsecutiveFailures(t *testing.T) {
	bc := NewBreakerCache(failingCache{err: errors.New("connection refused")})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := bc.Get(ctx, "123")
		assert.EqualError(t, err, "connection refused")
	}

	// Breaker is open now; calls fail fast without reaching the backend.
	_, err := bc.Get(ctx, "123")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
