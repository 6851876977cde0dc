// Package weather derives a travel weather risk from OpenWeather hourly forecasts.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

const (
	OneCallURL  = "https://api.openweathermap.org/data/3.0/onecall"
	CitationURL = "https://openweathermap.org/"
)

// Thresholds in mm/h for rain and m/s for wind (8.3 m/s is about 30 km/h).
const (
	heavyRainMM = 2.0
	lightRainMM = 0.2
	strongWind  = 8.3
)

type hour struct {
	Dt        int64           `json:"dt"`
	Rain      json.RawMessage `json:"rain"`
	WindSpeed float64         `json:"wind_speed"`
}

// rain1h returns the 1h rain volume, or 0 when the field is absent or not an object.
func (h hour) rain1h() float64 {
	var r struct {
		OneHour float64 `json:"1h"`
	}
	if len(h.Rain) == 0 || json.Unmarshal(h.Rain, &r) != nil {
		return 0
	}
	return r.OneHour
}

type oneCallResponse struct {
	Hourly []hour `json:"hourly"`
}

type OpenWeather struct {
	BaseURL string
	client  *httpx.Client
	apiKey  string
	units   string
}

func NewOpenWeather(client *httpx.Client, apiKey, units string) *OpenWeather {
	return &OpenWeather{BaseURL: OneCallURL, client: client, apiKey: apiKey, units: units}
}

func (o *OpenWeather) WeatherRisk(ctx context.Context, at domain.Coordinates, arrivalISO string) (_ domain.WeatherRisk, err error) {
	defer obs.Time(ctx, "weather.openweather.WeatherRisk")(&err)

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	q.Set("appid", o.apiKey)
	q.Set("units", o.units)
	q.Set("exclude", "minutely,daily,alerts")

	body, err := o.client.GetJSON(ctx, o.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.WeatherRisk{}, fmt.Errorf("openweather: %w", err)
	}

	var decoded oneCallResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.WeatherRisk{}, fmt.Errorf("openweather: decode response: %w", err)
	}

	h, ok := pickHour(decoded.Hourly, arrivalISO)
	if !ok {
		return domain.WeatherRisk{CitationURL: CitationURL}, nil
	}
	return domain.WeatherRisk{Text: RiskText(h.rain1h(), h.WindSpeed), CitationURL: CitationURL}, nil
}

// pickHour chooses the hour closest to the arrival instant; ties go to the earlier entry.
// Without a parseable arrival the first hour is used.
func pickHour(hours []hour, arrivalISO string) (hour, bool) {
	if len(hours) == 0 {
		return hour{}, false
	}
	if arrivalISO == "" {
		return hours[0], true
	}
	target, err := domain.ISOInstant(arrivalISO)
	if err != nil {
		return hours[0], true
	}

	ts := target.Unix()
	best := hours[0]
	bestDiff := absDiff(best.Dt, ts)
	for _, h := range hours[1:] {
		if d := absDiff(h.Dt, ts); d < bestDiff {
			best, bestDiff = h, d
		}
	}
	return best, true
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// RiskText renders hazards as "<Hazards> expected near travel time.", or "" when calm.
func RiskText(rainMM, windMS float64) string {
	var hazards []string
	switch {
	case rainMM > heavyRainMM:
		hazards = append(hazards, "heavy rain")
	case rainMM > lightRainMM:
		hazards = append(hazards, "light rain")
	}
	if windMS > strongWind {
		hazards = append(hazards, "strong wind")
	}
	if len(hazards) == 0 {
		return ""
	}

	joined := strings.Join(hazards, ", ")
	return strings.ToUpper(joined[:1]) + joined[1:] + " expected near travel time."
}
