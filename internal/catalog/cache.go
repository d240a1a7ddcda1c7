package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedSource wraps another Source with a redis cache so the booking form can
// list packages without hitting the upstream catalog on every request. Misses
// and redis failures fall through to the wrapped source.
type CachedSource struct {
	src   Source
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedSource creates a redis-backed cache over src.
func NewCachedSource(src Source, redisClient *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, redis: redisClient, ttl: ttl}
}

func (c *CachedSource) key(packageID string) string {
	return fmt.Sprintf("catalog:package:%s", packageID)
}

const listKey = "catalog:packages"

// Get returns the package with the given ID, consulting the cache first.
func (c *CachedSource) Get(ctx context.Context, packageID string) (*Package, error) {
	data, err := c.redis.Get(ctx, c.key(packageID)).Bytes()
	if err == nil {
		var p Package
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	}

	p, err := c.src.Get(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		c.redis.Set(ctx, c.key(packageID), data, c.ttl)
	}
	return p, nil
}

// List returns all packages, consulting the cache first.
func (c *CachedSource) List(ctx context.Context) ([]Package, error) {
	data, err := c.redis.Get(ctx, listKey).Bytes()
	if err == nil {
		var packages []Package
		if err := json.Unmarshal(data, &packages); err == nil {
			return packages, nil
		}
	}

	packages, err := c.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list packages: %w", err)
	}

	if data, err := json.Marshal(packages); err == nil {
		c.redis.Set(ctx, listKey, data, c.ttl)
	}
	return packages, nil
}
