package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

type cacheEntry struct {
	result    summaryModel.Result
	expiresAt time.Time
}

// InMemorySummaryCache is the fallback when Redis is offline. Entries expire
// after ttl; once maxEntries is reached the entry closest to expiry is evicted.
type InMemorySummaryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func InitInMemorySummaryCache(ttl time.Duration, maxEntries int) *InMemorySummaryCache {
	if ttl <= 0 {
		ttl = config.RedisSummaryCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = config.InMemoryCacheMaxEntries
	}
	return &InMemorySummaryCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *InMemorySummaryCache) Get(ctx context.Context, key string) (summaryModel.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.entries[key]
	if !found {
		return summaryModel.Result{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return summaryModel.Result{}, false
	}
	return entry.result, true
}

func (c *InMemorySummaryCache) Set(ctx context.Context, key string, result summaryModel.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	result.Cached = false
	c.entries[key] = cacheEntry{result: result, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *InMemorySummaryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *InMemorySummaryCache) evictLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}
