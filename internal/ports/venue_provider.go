package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Contract for wheelchair accessibility of the venue at a location.
type VenueAccessProvider interface {
	// Return nil when no accessibility information is tagged near the location.
	WheelchairAccess(ctx context.Context, at domain.Coordinates) (*domain.VenueAccess, error)
}
