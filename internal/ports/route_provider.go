package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Contract for retrieving candidate routes between two addresses.
type RouteProvider interface {
	// Return candidate routes in provider order. arrivalISO may be empty.
	CandidateRoutes(ctx context.Context, origin string, destination string, arrivalISO string) ([]domain.RouteCandidate, error)
}
