package store

import (
	"context"
	"sync"
)

// memoryCache is a process-local LocalCache, used when the cache backend is
// unreachable at startup and in tests. Contents are lost on restart, which
// still satisfies the cache's role as a best-effort fallback.
type memoryCache struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryCache() LocalCache {
	return &memoryCache{
		values: make(map[string]string),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.values[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value

	return nil
}
