package domain

import (
	"encoding/json"
	"fmt"
)

// Travel mode of a RouteCandidate.
type Mode string

const (
	ModeTransit Mode = "transit"
	ModeBus     Mode = "bus"
	ModeDrive   Mode = "drive"
)

// ParseMode validates s against the closed set of modes.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTransit, ModeBus, ModeDrive:
		return m, nil
	}
	return "", fmt.Errorf("unknown route mode %q", s)
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("route mode: %w", err)
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Represents one proposed way to travel from origin to destination.
// Candidates are built fresh per request by a route provider and are
// never mutated after construction.
type RouteCandidate struct {
	Summary     string `json:"summary"`
	DurationMin int    `json:"duration_min"`
	Transfers   int    `json:"transfers"`
	Mode        Mode   `json:"mode"`
	MapsURL     string `json:"maps_url"`
}
