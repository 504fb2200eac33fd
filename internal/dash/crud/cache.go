package crud

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is the query cache shared by the entity controllers. Entries are
// keyed by entity name plus query parameters; concurrent fetches for the
// same key are deduplicated through singleflight so one request serves
// every waiter.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	group   singleflight.Group
}

// NewCache builds an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// do returns the cached value for key, fetching it at most once per
// invalidation cycle.
func (c *Cache) do(key string, fetch func() (any, error)) (any, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have stored the entry while we waited
		// for the flight slot.
		c.mu.Lock()
		if v, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		v, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Invalidate drops every cached page for entity. Called after any
// successful mutation so the next list re-fetches server truth.
func (c *Cache) Invalidate(entity string) {
	prefix := entity + "|"
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func cacheKey(entity, q string, page, limit int) string {
	return fmt.Sprintf("%s|%s|%d|%d", entity, q, page, limit)
}
