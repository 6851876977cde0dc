package ports

import (
	"context"
	"time"
)

// Cache of raw upstream feed bodies keyed by feed URL.
type FeedCache interface {
	// Return the cached body and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte, ttl time.Duration) error
}
