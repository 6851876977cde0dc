package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Contract for weather risk near a location around a target time (arrivalISO may be empty).
type WeatherProvider interface {
	WeatherRisk(ctx context.Context, at domain.Coordinates, arrivalISO string) (domain.WeatherRisk, error)
}
