package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

type cachedRarityEntry struct {
	Version  string
	Items    []domain.Item
	CachedAt time.Time
}

// rarityCache maps a rarity to the catalog items that support it
type rarityCache struct {
	lru *expirable.LRU[domain.Rarity, *cachedRarityEntry]
}

func newRarityCache(size int, ttl time.Duration) *rarityCache {
	return &rarityCache{
		lru: expirable.NewLRU[domain.Rarity, *cachedRarityEntry](size, nil, ttl),
	}
}

// Get returns the cached items for a rarity; stale schema versions are evicted
func (c *rarityCache) Get(rarity domain.Rarity) ([]domain.Item, bool) {
	entry, found := c.lru.Get(rarity)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(rarity)
		return nil, false
	}
	return entry.Items, true
}

func (c *rarityCache) Set(rarity domain.Rarity, items []domain.Item) {
	c.lru.Add(rarity, &cachedRarityEntry{
		Version:  CacheSchemaVersion,
		Items:    items,
		CachedAt: time.Now(),
	})
}

func (c *rarityCache) Clear() {
	c.lru.Purge()
}
