package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim geocodes through an OpenStreetMap Nominatim search endpoint. No key needed.
type Nominatim struct {
	searchURL string
	client    *httpx.Client
}

func NewNominatim(client *httpx.Client, searchURL string) *Nominatim {
	return &Nominatim{searchURL: searchURL, client: client}
}

func (n *Nominatim) Name() string { return "nominatim" }

func (n *Nominatim) Lookup(ctx context.Context, address string) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	body, err := n.client.GetJSON(ctx, n.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}

	var decoded []nominatimResult
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}
	if len(decoded) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lon: %w", err)
	}

	return &domain.Place{
		Coordinates:     domain.Coordinates{Lon: lon, Lat: lat},
		ResolvedAddress: decoded[0].DisplayName,
	}, nil
}
