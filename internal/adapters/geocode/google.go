package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

const GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Google geocodes through the Google Geocoding API.
type Google struct {
	BaseURL string
	client  *httpx.Client
	apiKey  string
}

func NewGoogle(client *httpx.Client, apiKey string) *Google {
	return &Google{BaseURL: GoogleGeocodeURL, client: client, apiKey: apiKey}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Lookup(ctx context.Context, address string) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "geocode.google")(&err)

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	body, err := g.client.GetJSON(ctx, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google geocode: %w", err)
	}

	var decoded googleGeocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("google geocode: decode response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, nil
	}

	r := decoded.Results[0]
	return &domain.Place{
		Coordinates:     domain.Coordinates{Lon: r.Geometry.Location.Lng, Lat: r.Geometry.Location.Lat},
		ResolvedAddress: r.FormattedAddress,
	}, nil
}
