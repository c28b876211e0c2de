package advisor

import (
	"strings"
	"sync"
	"time"

	"github.com/finsight/finsight/internal/model"
)

// cacheEntry represents a cached category suggestion.
type cacheEntry struct {
	expiry   time.Time
	category model.Category
}

// suggestionCache provides thread-safe caching of category suggestions keyed
// by normalized description, so re-editing the same merchant doesn't hit the
// provider again.
type suggestionCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

func newSuggestionCache(ttl time.Duration) *suggestionCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &suggestionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go cache.cleanup()
	return cache
}

func cacheKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

func (c *suggestionCache) get(description string) (model.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[cacheKey(description)]
	if !exists || time.Now().After(entry.expiry) {
		return "", false
	}
	return entry.category, true
}

func (c *suggestionCache) set(description string, category model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(description)] = cacheEntry{
		category: category,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *suggestionCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *suggestionCache) Close() {
	close(c.stopCh)
}
