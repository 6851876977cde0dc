package domain

import (
	"encoding/json"
	"fmt"
)

// Semantic role of a ContextBullet.
type BulletType string

const (
	BulletRouteSummary         BulletType = "route_summary"
	BulletAccessibilityAlert   BulletType = "accessibility_alert"
	BulletVenueAccess          BulletType = "venue_access"
	BulletWeatherRisk          BulletType = "weather_risk"
	BulletBufferRecommendation BulletType = "buffer_recommendation"
)

// ParseBulletType validates s against the closed set of bullet types.
func ParseBulletType(s string) (BulletType, error) {
	switch t := BulletType(s); t {
	case BulletRouteSummary,
		BulletAccessibilityAlert,
		BulletVenueAccess,
		BulletWeatherRisk,
		BulletBufferRecommendation:
		return t, nil
	}
	return "", fmt.Errorf("unknown bullet type %q", s)
}

func (t *BulletType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("bullet type: %w", err)
	}
	parsed, err := ParseBulletType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// One explanatory line of a context package. Consumers may filter or
// reorder by Type but must treat Text as opaque.
type ContextBullet struct {
	Type      BulletType `json:"type"`
	Text      string     `json:"text"`
	Citations []string   `json:"citations"`
}
