// Package directions provides candidate routes from Google Directions or a deterministic mock.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

const GoogleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

const maxGoogleRoutes = 3

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			Steps []struct {
				TravelMode string `json:"travel_mode"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// GoogleDirections asks Google for up to three transit alternatives.
// When Google fails or returns nothing usable, the mock candidates are served instead.
type GoogleDirections struct {
	BaseURL string
	client  *httpx.Client
	apiKey  string
}

func NewGoogleDirections(client *httpx.Client, apiKey string) *GoogleDirections {
	return &GoogleDirections{BaseURL: GoogleDirectionsURL, client: client, apiKey: apiKey}
}

func (g *GoogleDirections) CandidateRoutes(ctx context.Context, origin, destination, arrivalISO string) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "directions.google")(&err)

	if origin == "" || destination == "" {
		return nil, nil
	}
	mapsURL := MapsLink(origin, destination, arrivalISO)

	candidates, err := g.fetch(ctx, origin, destination, arrivalISO, mapsURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("req_id=%s directions: google failed, serving mock candidates: %v", obs.RequestID(ctx), err)
	}
	if len(candidates) == 0 {
		return mockCandidates(mapsURL), nil
	}
	return candidates, nil
}

func (g *GoogleDirections) fetch(ctx context.Context, origin, destination, arrivalISO, mapsURL string) ([]domain.RouteCandidate, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", "transit")
	q.Set("alternatives", "true")
	q.Set("key", g.apiKey)
	if arrivalISO != "" {
		if t, err := domain.ISOInstant(arrivalISO); err == nil {
			q.Set("arrival_time", strconv.FormatInt(t.Unix(), 10))
		}
	}

	body, err := g.client.GetJSON(ctx, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google directions: %w", err)
	}

	var decoded directionsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("google directions: decode response: %w", err)
	}

	routes := decoded.Routes[:min(len(decoded.Routes), maxGoogleRoutes)]
	out := make([]domain.RouteCandidate, 0, len(routes))
	for _, r := range routes {
		if len(r.Legs) == 0 {
			continue
		}
		leg := r.Legs[0]

		durationMin := max(1, leg.Duration.Value/60)

		transitSteps := 0
		for _, s := range leg.Steps {
			if s.TravelMode == "TRANSIT" {
				transitSteps++
			}
		}
		transfers := max(0, transitSteps-1)

		summary := r.Summary
		if summary == "" {
			summary = fmt.Sprintf("Transit route (%d min)", durationMin)
		}

		out = append(out, domain.RouteCandidate{
			Summary:     fmt.Sprintf("%s (%d min, %d %s)", summary, durationMin, transfers, pluralTransfer(transfers)),
			DurationMin: durationMin,
			Transfers:   transfers,
			Mode:        domain.ModeTransit,
			MapsURL:     mapsURL,
		})
	}

	return out, nil
}

func pluralTransfer(n int) string {
	if n == 1 {
		return "transfer"
	}
	return "transfers"
}
