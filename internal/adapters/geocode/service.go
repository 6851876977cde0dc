// Package geocode resolves free-text addresses through a cache and an ordered chain of backends.
package geocode

import (
	"context"
	"log"
	"strings"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/ports"
)

// Backend is one geocoding provider. Lookup returns nil when the address matched nothing.
type Backend interface {
	Name() string
	Lookup(ctx context.Context, address string) (*domain.Place, error)
}

// Service tries each backend in order; the first hit wins and is written back to the cache.
// A failing backend is logged and skipped.
type Service struct {
	cache    ports.GeocodeCache
	backends []Backend
}

func NewService(cache ports.GeocodeCache, backends ...Backend) *Service {
	return &Service{cache: cache, backends: backends}
}

// Normalize collapses runs of whitespace and trims the address.
func Normalize(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

func cacheKey(normalized string) string {
	return strings.ToLower(normalized)
}

func (s *Service) Geocode(ctx context.Context, address string) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "geocode.Geocode")(&err)

	norm := Normalize(address)
	if norm == "" {
		return nil, nil
	}
	key := cacheKey(norm)

	if s.cache != nil {
		hits, err := s.cache.GetMany(ctx, []string{key})
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		} else if p, ok := hits[key]; ok {
			return &p, nil
		}
	}

	for _, b := range s.backends {
		place, err := b.Lookup(ctx, norm)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("req_id=%s geocode backend=%s failed: %v", obs.RequestID(ctx), b.Name(), err)
			continue
		}
		if place == nil {
			continue
		}
		if place.ResolvedAddress == "" {
			place.ResolvedAddress = norm
		}

		if s.cache != nil {
			if err := s.cache.PutMany(ctx, map[string]domain.Place{key: *place}); err != nil {
				log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
			}
		}
		return place, nil
	}

	return nil, nil
}
