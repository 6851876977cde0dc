package domain

// QueryIntentRouteToEvent is the only intent a package currently carries.
const QueryIntentRouteToEvent = "route_to_event"

type EventRef struct {
	Title        *string `json:"title"`
	StartTimeISO *string `json:"start_time_iso"`
	LocationText *string `json:"location_text"`
}

type OriginRef struct {
	Label   *string `json:"label"`
	Address *string `json:"address"`
}

type AlternativeRoute struct {
	Summary   string   `json:"summary"`
	Citations []string `json:"citations"`
}

// The externally visible, citation-backed result of one trip-context request.
// It is serialized as-is by both the HTTP and MCP front-ends.
type ContextPackage struct {
	QueryIntent   string             `json:"query_intent"`
	SourcesUsed   []string           `json:"sources_used"`
	Event         EventRef           `json:"event"`
	Origin        OriginRef          `json:"origin"`
	Highlights    []ContextBullet    `json:"highlights"`
	Alternatives  []AlternativeRoute `json:"alternatives"`
	RawCitations  []string           `json:"raw_citations"`
	TokenEstimate int                `json:"token_estimate"`
	Meta          map[string]any     `json:"meta"`
}

// Optional returns nil for the empty string and a pointer to s otherwise.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
