package data

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PriceCache stores the last good quote so repeated page loads don't refetch it.
type PriceCache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, price float64) error
}

type cacheEntry struct {
	price     float64
	expiresAt time.Time
}

// MemoryPriceCache is an in-process TTL cache.
type MemoryPriceCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryPriceCache(ttl time.Duration) *MemoryPriceCache {
	return &MemoryPriceCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached price if present and not expired.
func (c *MemoryPriceCache) Get(_ context.Context, key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return 0, false
	}
	return e.price, true
}

func (c *MemoryPriceCache) Set(_ context.Context, key string, price float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{price: price, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// RedisPriceCache shares quotes between server instances.
type RedisPriceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPriceCache(addr string, ttl time.Duration) *RedisPriceCache {
	return &RedisPriceCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (r *RedisPriceCache) Get(ctx context.Context, key string) (float64, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("redis price cache read failed", zap.String("key", key), zap.Error(err))
		}
		return 0, false
	}
	p, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

func (r *RedisPriceCache) Set(ctx context.Context, key string, price float64) error {
	return r.client.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), r.ttl).Err()
}

// Ping checks connectivity at startup.
func (r *RedisPriceCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisPriceCache) Close() error {
	return r.client.Close()
}
