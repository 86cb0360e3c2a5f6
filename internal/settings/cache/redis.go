package cache

import (
	"context"
	"errors"

	"github.com/mirellenails/salon-backend/internal/settings/store"
	"github.com/redis/go-redis/v9"
)

type localCache struct {
	client *redis.Client
}

func NewLocalCache(client *redis.Client) store.LocalCache {
	return &localCache{
		client: client,
	}
}

// Get returns the cached document, or "" when nothing is cached yet.
func (c *localCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return "", err
	}

	return value, nil
}

func (c *localCache) Set(ctx context.Context, key string, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}
