package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerCache wraps a remote Cache with a circuit breaker so a dead cache
// backend degrades to store-only lookups instead of a timeout on every scan.
// A cache miss is a normal answer, not a failure.
type BreakerCache struct {
	inner Cache
	cb    *gobreaker.CircuitBreaker[*domain.Product]
}

func NewBreakerCache(inner Cache) *BreakerCache {
	settings := gobreaker.Settings{
		Name:    "catalog-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCacheMiss)
		},
	}
	return &BreakerCache{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*domain.Product](settings),
	}
}

func (b *BreakerCache) Get(ctx context.Context, code string) (*domain.Product, error) {
	return b.cb.Execute(func() (*domain.Product, error) {
		return b.inner.Get(ctx, code)
	})
}

func (b *BreakerCache) Set(ctx context.Context, code string, product *domain.Product) error {
	_, err := b.cb.Execute(func() (*domain.Product, error) {
		return nil, b.inner.Set(ctx, code, product)
	})
	return err
}

func (b *BreakerCache) Delete(ctx context.Context, code string) error {
	_, err := b.cb.Execute(func() (*domain.Product, error) {
		return nil, b.inner.Delete(ctx, code)
	})
	return err
}
