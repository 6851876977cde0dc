package dto

import "mobility-context-service/internal/domain"

// Optional fields are pointers so absent and zero values can be told apart.
type BuildContextRequest struct {
	UseNextEvent   *bool   `json:"use_next_event"`
	Query          *string `json:"query"`
	Origin         *string `json:"origin"`
	Destination    *string `json:"destination"`
	ArrivalTimeISO *string `json:"arrival_time_iso"`
	BufferMinutes  *int    `json:"buffer_minutes"`
	City           *string `json:"city"`
}

type AskRequest struct {
	Question      *string `json:"question"`
	Origin        *string `json:"origin"`
	BufferMinutes *int    `json:"buffer_minutes"`
}

type AskResponse struct {
	Answer  string                 `json:"answer"`
	Context *domain.ContextPackage `json:"context"`
}

// Value returns *p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
