package domain

import "strings"

// A calendar event that can serve as a trip destination.
type Event struct {
	Title    string
	StartISO string
	Location string
}

// Wheelchair accessibility value of an OpenStreetMap `wheelchair` tag.
type WheelchairTag string

const (
	WheelchairYes     WheelchairTag = "yes"
	WheelchairLimited WheelchairTag = "limited"
	WheelchairNo      WheelchairTag = "no"
	WheelchairUnknown WheelchairTag = "unknown"
)

// NormalizeWheelchairTag maps any raw tag value outside yes/limited/no to unknown.
func NormalizeWheelchairTag(raw string) WheelchairTag {
	switch t := WheelchairTag(strings.TrimSpace(raw)); t {
	case WheelchairYes, WheelchairLimited, WheelchairNo:
		return t
	}
	return WheelchairUnknown
}

// Wheelchair access at the destination venue, with an optional free-text note.
type VenueAccess struct {
	Wheelchair WheelchairTag
	Note       string
}

// Weather conditions near the destination around arrival time.
// An empty Text means no risk was found.
type WeatherRisk struct {
	Text        string
	CitationURL string
}
