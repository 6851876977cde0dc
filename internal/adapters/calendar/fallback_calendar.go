package calendar

import (
	"context"
	"log"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/ports"
)

// StubEvent is served whenever no real calendar event is available.
var StubEvent = domain.Event{
	Title:    "Museum Visit",
	StartISO: "2025-11-08T16:00:00-05:00",
	Location: "The Met, 1000 5th Ave, New York, NY",
}

// FallbackCalendar never comes back empty: a missing or failing primary yields StubEvent.
type FallbackCalendar struct {
	primary ports.EventSource
}

// NewFallbackCalendar wraps primary, which may be nil.
func NewFallbackCalendar(primary ports.EventSource) *FallbackCalendar {
	return &FallbackCalendar{primary: primary}
}

func (f *FallbackCalendar) NextEvent(ctx context.Context) (*domain.Event, error) {
	if f.primary != nil {
		ev, err := f.primary.NextEvent(ctx)
		if err != nil {
			log.Printf("req_id=%s calendar lookup failed, using stub event: %v", obs.RequestID(ctx), err)
		} else if ev != nil {
			return ev, nil
		}
	}

	stub := StubEvent
	return &stub, nil
}
