package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Port: a boundary for looking up the user's next calendar event.
type EventSource interface {
	// Return the next upcoming event with a location, or nil when there is none.
	NextEvent(ctx context.Context) (*domain.Event, error)
}
