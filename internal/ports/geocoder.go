package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// Return the resolved place, or nil when the address matched nothing.
	Geocode(ctx context.Context, address string) (*domain.Place, error)
}

// Cache of geocoding results keyed by normalized address.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Place, error)
	PutMany(ctx context.Context, results map[string]domain.Place) error
}
