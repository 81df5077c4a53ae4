package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultBaseTTL   = 15 * time.Minute
	defaultMaxJitter = 5 * time.Minute
)

// RedisCache shares resolved products between checkout stations. Entries
// live baseTTL plus a random slice of maxJitter so stations do not expire
// their entries in lockstep.
type RedisCache struct {
	client    *redis.Client
	baseTTL   time.Duration
	maxJitter time.Duration
}

// NewRedisCache builds a cache over client. Non-positive durations fall
// back to the defaults.
func NewRedisCache(client *redis.Client, baseTTL, maxJitter time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = defaultBaseTTL
	}
	if maxJitter <= 0 {
		maxJitter = defaultMaxJitter
	}
	return &RedisCache{
		client:    client,
		baseTTL:   baseTTL,
		maxJitter: maxJitter,
	}
}

func (r *RedisCache) Get(ctx context.Context, code string) (*domain.Product, error) {
	key := cacheKey(code)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode cached product: %w", err)
	}

	return &product, nil
}

func (r *RedisCache) Set(ctx context.Context, code string, product *domain.Product) error {
	key := cacheKey(code)
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	ttl := r.baseTTL + time.Duration(rand.Int63n(int64(r.maxJitter)))
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, cacheKey(code)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", cacheKey(code), err)
	}

	return nil
}

func cacheKey(code string) string {
	return fmt.Sprintf("product:%s", code)
}
