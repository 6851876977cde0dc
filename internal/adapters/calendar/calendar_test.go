package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
)

const feed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:past
DTSTART:20240101T150000Z
SUMMARY:Old Meeting
LOCATION:Somewhere
END:VEVENT
BEGIN:VEVENT
UID:no-location
DTSTART:20300101T090000Z
SUMMARY:Call
END:VEVENT
BEGIN:VEVENT
UID:later
DTSTART:20300301T120000Z
SUMMARY:Dentist
LOCATION:200 W 57th St
END:VEVENT
BEGIN:VEVENT
UID:soonest
DTSTART:20300201T180000
LOCATION: Lincoln Center
END:VEVENT
END:VCALENDAR
`

func newCalendar(t *testing.T, body string, status int) *ICSCalendar {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n")))
	}))
	t.Cleanup(srv.Close)

	c := NewICSCalendar(httpx.NewClient(time.Second, 1), srv.URL)
	c.now = func() time.Time { return time.Date(2029, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestICSCalendarPicksEarliestLocatedFutureEvent(t *testing.T) {
	c := newCalendar(t, feed, http.StatusOK)

	ev, err := c.NextEvent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, domain.Event{
		Title:    "Calendar Event",
		StartISO: "2030-02-01T18:00:00+00:00",
		Location: "Lincoln Center",
	}, *ev)
}

func TestICSCalendarNoURL(t *testing.T) {
	ev, err := NewICSCalendar(httpx.NewClient(time.Second, 1), "").NextEvent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestICSCalendarUpstreamFailure(t *testing.T) {
	c := newCalendar(t, "", http.StatusNotFound)
	_, err := c.NextEvent(context.Background())
	require.Error(t, err)
}

type fakeSource struct {
	ev  *domain.Event
	err error
}

func (f fakeSource) NextEvent(context.Context) (*domain.Event, error) { return f.ev, f.err }

func TestFallbackCalendar(t *testing.T) {
	hit := &domain.Event{Title: "Dinner", StartISO: "2030-01-01T19:00:00+00:00", Location: "Balthazar"}

	tests := []struct {
		name    string
		primary *fakeSource
		want    domain.Event
	}{
		{name: "primary hit", primary: &fakeSource{ev: hit}, want: *hit},
		{name: "primary empty", primary: &fakeSource{}, want: StubEvent},
		{name: "primary error", primary: &fakeSource{err: errors.New("timeout")}, want: StubEvent},
		{name: "no primary", primary: nil, want: StubEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFallbackCalendar(nil)
			if tt.primary != nil {
				f = NewFallbackCalendar(*tt.primary)
			}
			ev, err := f.NextEvent(context.Background())
			require.NoError(t, err)
			require.NotNil(t, ev)
			assert.Equal(t, tt.want, *ev)
		})
	}
}

func TestFallbackCalendarStubIsACopy(t *testing.T) {
	ev, err := NewFallbackCalendar(nil).NextEvent(context.Background())
	require.NoError(t, err)
	ev.Title = "changed"
	assert.Equal(t, "Museum Visit", StubEvent.Title)
}
