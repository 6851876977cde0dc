package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"mobility-context-service/internal/domain"
)

// LRUGeocodeCache keeps geocode results in process memory, bounded by size.
// Used when no database is configured.
type LRUGeocodeCache struct {
	entries *lru.Cache[string, domain.Place]
}

func NewLRUGeocodeCache(size int) (*LRUGeocodeCache, error) {
	c, err := lru.New[string, domain.Place](size)
	if err != nil {
		return nil, fmt.Errorf("lru geocode cache: %w", err)
	}
	return &LRUGeocodeCache{entries: c}, nil
}

func (c *LRUGeocodeCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Place, error) {
	out := make(map[string]domain.Place, len(addresses))
	for _, a := range uniqueKeys(addresses) {
		if p, ok := c.entries.Get(a); ok {
			out[a] = p
		}
	}
	return out, nil
}

func (c *LRUGeocodeCache) PutMany(_ context.Context, results map[string]domain.Place) error {
	for addr, p := range results {
		if addr == "" {
			return fmt.Errorf("lru geocode cache: empty address key")
		}
		c.entries.Add(addr, p)
	}
	return nil
}
