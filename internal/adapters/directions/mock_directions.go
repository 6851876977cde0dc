package directions

import (
	"context"

	"mobility-context-service/internal/domain"
)

// MockDirections returns the same three NYC-flavored candidates for every trip.
type MockDirections struct{}

func NewMockDirections() *MockDirections {
	return &MockDirections{}
}

func (m *MockDirections) CandidateRoutes(_ context.Context, origin, destination, arrivalISO string) ([]domain.RouteCandidate, error) {
	if origin == "" || destination == "" {
		return nil, nil
	}
	return mockCandidates(MapsLink(origin, destination, arrivalISO)), nil
}

func mockCandidates(mapsURL string) []domain.RouteCandidate {
	return []domain.RouteCandidate{
		{
			Summary:     "Q line via 57 St (57 min, 1 transfer)",
			DurationMin: 57,
			Transfers:   1,
			Mode:        domain.ModeTransit,
			MapsURL:     mapsURL,
		},
		{
			Summary:     "M1 → M4 accessible bus (65 min, 1 transfer)",
			DurationMin: 65,
			Transfers:   1,
			Mode:        domain.ModeBus,
			MapsURL:     mapsURL,
		},
		{
			Summary:     "Taxi/ride (28 min, no transfers)",
			DurationMin: 28,
			Transfers:   0,
			Mode:        domain.ModeDrive,
			MapsURL:     mapsURL,
		},
	}
}
