package weather

import (
	"context"

	"mobility-context-service/internal/domain"
)

const mockRisk = "Light rain expected; carry rain cover."

// MockWeather always reports light rain.
type MockWeather struct{}

func NewMockWeather() *MockWeather {
	return &MockWeather{}
}

func (m *MockWeather) WeatherRisk(context.Context, domain.Coordinates, string) (domain.WeatherRisk, error) {
	return domain.WeatherRisk{Text: mockRisk, CitationURL: CitationURL}, nil
}
