package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cartwise/backend/internal/domain"
)

// catalogEntry is one cached store catalog with its expiration and insertion
// order (for bounded eviction).
type catalogEntry struct {
	Catalog    []domain.ProductRecord
	Expiration time.Time
	StoredAt   time.Time
}

// CatalogCache is a thread-safe, bounded in-memory cache of store catalogs
// with TTL support. Writers replace whole snapshots per store, so readers
// always see an internally consistent catalog even if it is slightly stale.
type CatalogCache struct {
	data       map[string]catalogEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
}

// NewCatalogCache creates a catalog cache. maxEntries bounds the number of
// stores held; the oldest snapshot is evicted when the bound is exceeded.
func NewCatalogCache(ttl time.Duration, maxEntries int) *CatalogCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}

	cache := &CatalogCache{
		data:       make(map[string]catalogEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}

	// Cleanup goroutine removes expired snapshots every few minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a store's cached catalog snapshot
func (c *CatalogCache) Get(ctx context.Context, store string) ([]domain.ProductRecord, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[store]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(entry.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return entry.Catalog, nil
}

// Set stores a catalog snapshot for a store, evicting the oldest snapshot
// when the cache is full.
func (c *CatalogCache) Set(ctx context.Context, store string, catalog []domain.ProductRecord) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Copy so later mutations by the caller cannot corrupt the snapshot
	snapshot := make([]domain.ProductRecord, len(catalog))
	copy(snapshot, catalog)

	now := time.Now()
	if _, exists := c.data[store]; !exists && len(c.data) >= c.maxEntries {
		c.evictOldestLocked()
	}

	c.data[store] = catalogEntry{
		Catalog:    snapshot,
		Expiration: now.Add(c.ttl),
		StoredAt:   now,
	}
	return nil
}

// Invalidate removes a store's snapshot from the cache
func (c *CatalogCache) Invalidate(ctx context.Context, store string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, store)
	return nil
}

// evictOldestLocked drops the least recently stored snapshot. Caller holds
// the write lock.
func (c *CatalogCache) evictOldestLocked() {
	var oldestStore string
	var oldestAt time.Time
	for store, entry := range c.data {
		if oldestStore == "" || entry.StoredAt.Before(oldestAt) {
			oldestStore = store
			oldestAt = entry.StoredAt
		}
	}
	if oldestStore != "" {
		delete(c.data, oldestStore)
	}
}

// cleanupExpired removes expired snapshots from the cache periodically
func (c *CatalogCache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for store, entry := range c.data {
			if now.After(entry.Expiration) {
				delete(c.data, store)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of cached stores (for debugging/monitoring)
func (c *CatalogCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all snapshots from the cache
func (c *CatalogCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]catalogEntry)
}
