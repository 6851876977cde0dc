package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

const ORSBaseURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// ORS geocodes through OpenRouteService (/geocode/search), restricted to the US.
type ORS struct {
	BaseURL string
	client  *httpx.Client
	apiKey  string
}

func NewORS(client *httpx.Client, apiKey string) *ORS {
	return &ORS{BaseURL: ORSBaseURL, client: client, apiKey: apiKey}
}

func (o *ORS) Name() string { return "ors" }

func (o *ORS) Lookup(ctx context.Context, address string) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "geocode.ors")(&err)

	q := url.Values{}
	q.Set("text", address)
	q.Set("boundary.country", "US")
	q.Set("size", "1")

	body, err := o.client.GetJSON(ctx, o.BaseURL+"/geocode/search?"+q.Encode(), http.Header{
		"Authorization": []string{o.apiKey},
	})
	if err != nil {
		return nil, fmt.Errorf("ors geocode: %w", err)
	}

	var decoded orsGeocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("ors geocode: decode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return nil, nil
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return nil, fmt.Errorf("ors geocode: invalid coordinate format for %q", address)
	}

	return &domain.Place{
		Coordinates:     domain.Coordinates{Lon: coords[0], Lat: coords[1]},
		ResolvedAddress: f.Properties.Label,
	}, nil
}
