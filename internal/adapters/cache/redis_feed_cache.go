package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mobility-context-service/internal/platform/obs"
)

const feedKeyPrefix = "mobility:feed:"

// RedisFeedCache stores raw upstream feed bodies with a TTL.
type RedisFeedCache struct {
	client *redis.Client
}

func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{client: client}
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

// Get returns the cached body for key; ok is false on a miss.
func (c *RedisFeedCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "feed.cache.Get")(&err)

	b, err := c.client.Get(ctx, feedKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("feed cache get %q: %w", key, err)
	}
	return b, true, nil
}

func (c *RedisFeedCache) Put(ctx context.Context, key string, body []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "feed.cache.Put")(&err)

	if err := c.client.Set(ctx, feedKeyPrefix+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("feed cache put %q: %w", key, err)
	}
	return nil
}
