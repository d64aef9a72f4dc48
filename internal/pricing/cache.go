package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-pricing/internal/obs"
)

// Cache stores calculated prices in Redis as JSON. A nil client disables
// caching without touching the calculation path.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals a cached calculation into dst. It reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			if obs.PriceCacheTotal != nil {
				obs.PriceCacheTotal.WithLabelValues("miss").Inc()
			}
			return false, nil
		}
		if obs.PriceCacheTotal != nil {
			obs.PriceCacheTotal.WithLabelValues("error").Inc()
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	if obs.PriceCacheTotal != nil {
		obs.PriceCacheTotal.WithLabelValues("hit").Inc()
	}
	return true, nil
}

// Set serialises v as JSON and stores it with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
