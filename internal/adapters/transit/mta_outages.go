// Package transit reports accessibility-equipment outages at NYC subway stations.
package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/ports"
)

// Current and upcoming elevator/escalator outage feeds, fetched in this order.
var DefaultFeedURLs = []string{
	"https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fnyct_ene.json",
	"https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fnyct_ene_upcoming.json",
}

const (
	statusSingle   = "Accessibility equipment outage"
	statusMultiple = "Multiple accessibility equipment outages"
)

type outageItem struct {
	Station       string `json:"station"`
	EquipmentType string `json:"equipmenttype"`
}

// MTAOutages reads the MTA equipment feeds, optionally through a FeedCache.
type MTAOutages struct {
	FeedURLs []string
	client   *httpx.Client
	apiKey   string
	cache    ports.FeedCache
	ttl      time.Duration
}

// NewMTAOutages builds the provider. cache may be nil.
func NewMTAOutages(client *httpx.Client, apiKey string, cache ports.FeedCache, ttl time.Duration) *MTAOutages {
	return &MTAOutages{
		FeedURLs: DefaultFeedURLs,
		client:   client,
		apiKey:   apiKey,
		cache:    cache,
		ttl:      ttl,
	}
}

func (m *MTAOutages) OutagesAffecting(ctx context.Context, stations []string) (_ []string, err error) {
	defer obs.Time(ctx, "transit.mta.OutagesAffecting")(&err)

	statuses, err := m.stationStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return matchStations(statuses, stations), nil
}

// stationStatuses merges every feed; a station in a later feed replaces its earlier status.
func (m *MTAOutages) stationStatuses(ctx context.Context) (map[string]string, error) {
	combined := map[string]string{}
	for _, u := range m.FeedURLs {
		body, err := m.feed(ctx, u)
		if err != nil {
			return nil, err
		}

		parsed, err := ParseOutageFeed(body)
		if err != nil {
			return nil, fmt.Errorf("mta feed %s: %w", u, err)
		}
		for st, status := range parsed {
			combined[st] = status
		}
	}
	return combined, nil
}

func (m *MTAOutages) feed(ctx context.Context, feedURL string) ([]byte, error) {
	if m.cache != nil {
		body, ok, err := m.cache.Get(ctx, feedURL)
		if err != nil {
			log.Printf("req_id=%s mta feed cache read failed: %v", obs.RequestID(ctx), err)
		} else if ok {
			return body, nil
		}
	}

	var header http.Header
	if m.apiKey != "" {
		header = http.Header{"X-Api-Key": []string{m.apiKey}}
	}
	body, err := m.client.GetJSON(ctx, feedURL, header)
	if err != nil {
		return nil, fmt.Errorf("mta feed %s: %w", feedURL, err)
	}

	if m.cache != nil {
		if err := m.cache.Put(ctx, feedURL, body, m.ttl); err != nil {
			log.Printf("req_id=%s mta feed cache write failed: %v", obs.RequestID(ctx), err)
		}
	}
	return body, nil
}

// ParseOutageFeed aggregates one feed into station -> status.
// Elevators weigh 2 and every other equipment type 1; a station weighing 2 or more
// has multiple outages. Malformed items and items without a station are skipped.
func ParseOutageFeed(body []byte) (map[string]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode outage feed: %w", err)
	}

	weights := map[string]int{}
	for _, raw := range items {
		var it outageItem
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		station := strings.TrimSpace(it.Station)
		if station == "" {
			continue
		}
		weight := 1
		if strings.ToUpper(strings.TrimSpace(it.EquipmentType)) == "EL" {
			weight = 2
		}
		weights[station] += weight
	}

	out := make(map[string]string, len(weights))
	for st, w := range weights {
		if w >= 2 {
			out[st] = statusMultiple
		} else {
			out[st] = statusSingle
		}
	}
	return out, nil
}

// matchStations emits one message per requested station whose status mentions an outage,
// in request order.
func matchStations(statuses map[string]string, stations []string) []string {
	msgs := []string{}
	for _, st := range stations {
		status, ok := statuses[st]
		if ok && strings.Contains(strings.ToLower(status), "outage") {
			msgs = append(msgs, "Elevator outage at "+st)
		}
	}
	return msgs
}
