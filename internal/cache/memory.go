package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Minute

// MemoryStore is an in-process Store backed by go-cache. It is safe for
// concurrent use.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates an empty MemoryStore. Entries without a TTL never
// expire; expired ones are swept every minute.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

// Get retrieves a value by key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrCacheMiss
	}
	return s, nil
}

// Set stores a key-value pair with TTL. A TTL of zero keeps the entry until
// it is deleted.
func (m *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.items.Set(key, value, ttl)
	return nil
}

// Delete removes keys.
func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.items.Delete(k)
	}
	return nil
}

// Len returns the number of unexpired entries.
func (m *MemoryStore) Len() int {
	return len(m.items.Items())
}
