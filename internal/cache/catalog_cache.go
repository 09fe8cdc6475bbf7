package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CatalogCache caches catalog read results as JSON, keyed by request type
// and parameters:
//
//	catalog:products
//	catalog:product:{id}
//	catalog:categories
//	catalog:category:{name}
type CatalogCache struct {
	store Store
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache. A zero ttl keeps entries
// until the process (or Redis) drops them.
func NewCatalogCache(store Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: store, ttl: ttl}
}

// KeyProducts returns the key of the full product list.
func KeyProducts() string { return "catalog:products" }

// KeyProduct returns the key of a single product.
func KeyProduct(id int) string { return fmt.Sprintf("catalog:product:%d", id) }

// KeyCategories returns the key of the category list.
func KeyCategories() string { return "catalog:categories" }

// KeyCategory returns the key of one category's product list.
func KeyCategory(name string) string { return "catalog:category:" + name }

// Get decodes the cached value at key into dst. It returns ErrCacheMiss
// when nothing is cached.
func (c *CatalogCache) Get(ctx context.Context, key string, dst any) error {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return nil
}

// Set stores value at key as JSON.
func (c *CatalogCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
