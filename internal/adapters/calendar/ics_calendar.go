// Package calendar finds the user's next located event in a private ICS feed.
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/platform/obs"
)

const defaultEventTitle = "Calendar Event"

// ICSCalendar reads a private ICS URL (no OAuth needed).
type ICSCalendar struct {
	feedURL string
	client  *httpx.Client
	now     func() time.Time
}

func NewICSCalendar(client *httpx.Client, feedURL string) *ICSCalendar {
	return &ICSCalendar{feedURL: feedURL, client: client, now: time.Now}
}

// NextEvent returns the earliest event starting after now that has a location.
func (c *ICSCalendar) NextEvent(ctx context.Context) (_ *domain.Event, err error) {
	defer obs.Time(ctx, "calendar.ics.NextEvent")(&err)

	if c.feedURL == "" {
		return nil, nil
	}

	body, err := c.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "text/calendar")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ics calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics calendar: parse: %w", err)
	}

	return nextEvent(cal.Events(), c.now().UTC()), nil
}

func nextEvent(events []*ics.VEvent, now time.Time) *domain.Event {
	var (
		best      *domain.Event
		bestStart time.Time
	)
	for _, ev := range events {
		location := propValue(ev, ics.ComponentPropertyLocation)
		if location == "" {
			continue
		}
		start, ok := eventStart(ev)
		if !ok || !start.After(now) {
			continue
		}
		if best != nil && !start.Before(bestStart) {
			continue
		}

		title := propValue(ev, ics.ComponentPropertySummary)
		if title == "" {
			title = defaultEventTitle
		}
		best = &domain.Event{
			Title:    title,
			StartISO: domain.FormatISO(start, true),
			Location: location,
		}
		bestStart = start
	}
	return best
}

// eventStart reads DTSTART. Floating times (no TZID, no trailing Z) are taken as UTC.
func eventStart(ev *ics.VEvent) (time.Time, bool) {
	prop := ev.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, false
	}
	start, err := ev.GetStartAt()
	if err != nil {
		return time.Time{}, false
	}

	_, hasTZID := prop.ICalParameters["TZID"]
	if !hasTZID && !strings.HasSuffix(prop.Value, "Z") {
		start = time.Date(start.Year(), start.Month(), start.Day(),
			start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), time.UTC)
	}
	return start, true
}

func propValue(ev *ics.VEvent, p ics.ComponentProperty) string {
	prop := ev.GetProperty(p)
	if prop == nil {
		return ""
	}
	return strings.TrimSpace(prop.Value)
}
