// Package osm looks up venue accessibility tags in OpenStreetMap through Overpass.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

// Half-width in degrees of the box searched around the destination.
const bboxDelta = 0.0008

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

type Overpass struct {
	interpreterURL string
	client         *httpx.Client
}

func NewOverpass(client *httpx.Client, interpreterURL string) *Overpass {
	return &Overpass{interpreterURL: interpreterURL, client: client}
}

// BuildQuery returns the Overpass QL query for wheelchair-tagged elements near at.
func BuildQuery(at domain.Coordinates) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	bbox := strings.Join([]string{
		f(at.Lat - bboxDelta), f(at.Lon - bboxDelta), f(at.Lat + bboxDelta), f(at.Lon + bboxDelta),
	}, ",")

	return fmt.Sprintf(`[out:json][timeout:10];
(
  node["wheelchair"](%[1]s);
  way["wheelchair"](%[1]s);
  relation["wheelchair"](%[1]s);
);
out tags center 10;
`, bbox)
}

// WheelchairAccess returns the first tagged element's access level, or nil when nothing nearby is tagged.
func (o *Overpass) WheelchairAccess(ctx context.Context, at domain.Coordinates) (_ *domain.VenueAccess, err error) {
	defer obs.Time(ctx, "osm.overpass.WheelchairAccess")(&err)

	form := url.Values{}
	form.Set("data", BuildQuery(at))
	encoded := form.Encode()

	body, err := o.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.interpreterURL, strings.NewReader(encoded))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}

	var decoded overpassResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}

	for _, el := range decoded.Elements {
		wc := el.Tags["wheelchair"]
		if wc == "" {
			continue
		}
		note := el.Tags["wheelchair:description"]
		if note == "" {
			note = el.Tags["description"]
		}
		return &domain.VenueAccess{
			Wheelchair: domain.NormalizeWheelchairTag(wc),
			Note:       note,
		}, nil
	}

	return nil, nil
}
