package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

const (
	catalogKey = "catalog:sweets"
	catalogTTL = time.Minute
)

// CatalogCache stores the full catalog listing in Redis as a JSON snapshot.
// The TTL bounds staleness even if an invalidation is lost.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached catalog, or (nil, nil) on a cache miss.
func (c *CatalogCache) Get(ctx context.Context) ([]*domain.Sweet, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []*domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return sweets, nil
}

// Set stores a catalog snapshot (expires after catalogTTL).
func (c *CatalogCache) Set(ctx context.Context, sweets []*domain.Sweet) error {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the cached snapshot. Called after every catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
