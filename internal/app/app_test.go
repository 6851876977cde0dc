package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/adapters/calendar"
	"mobility-context-service/internal/config"
	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/services"
)

type fakeUpstreams struct {
	nominatim     *httptest.Server
	overpass      *httptest.Server
	nominatimHits atomic.Int32
}

func newFakeUpstreams(t *testing.T) *fakeUpstreams {
	t.Helper()
	f := &fakeUpstreams{}

	f.nominatim = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.nominatimHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"40.7794","lon":"-73.9632","display_name":"The Metropolitan Museum of Art, New York"}]`))
	}))
	t.Cleanup(f.nominatim.Close)

	f.overpass = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements":[{"tags":{"wheelchair":"yes"}}]}`))
	}))
	t.Cleanup(f.overpass.Close)

	return f
}

func testConfig(f *fakeUpstreams) config.Config {
	return config.Config{
		MockMode:         true,
		HomeAddress:      "350 5th Ave, New York, NY",
		DefaultCity:      "nyc",
		NominatimURL:     f.nominatim.URL,
		OverpassURL:      f.overpass.URL,
		WeatherUnits:     "metric",
		RequestTimeout:   2 * time.Second,
		HTTPMaxAttempts:  1,
		StationTokens:    []string{"86 St (Q)", "57 St"},
		GeocodeCacheSize: 16,
		OutageFeedTTL:    time.Minute,
	}
}

func TestNewMockModeBuildsPackage(t *testing.T) {
	f := newFakeUpstreams(t)
	cfg := testConfig(f)
	cfg.DBPath = filepath.Join(t.TempDir(), "geocode.db")

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	pkg, err := a.Builder.Build(context.Background(), services.BuildRequest{
		UseNextEvent:  true,
		BufferMinutes: services.DefaultBufferMinutes,
	})
	require.NoError(t, err)

	assert.Equal(t, calendar.StubEvent.Title, *pkg.Event.Title)
	assert.Equal(t, "The Metropolitan Museum of Art, New York", *pkg.Event.LocationText)
	assert.Equal(t, cfg.HomeAddress, *pkg.Origin.Address)
	assert.Equal(t, []string{"directions", "gtfs_rt_elevators", "osm_overpass", "openweather"}, pkg.SourcesUsed)
	require.NotEmpty(t, pkg.Highlights)
	assert.Equal(t, domain.BulletRouteSummary, pkg.Highlights[0].Type)

	var types []domain.BulletType
	for _, b := range pkg.Highlights {
		types = append(types, b.Type)
	}
	assert.Contains(t, types, domain.BulletAccessibilityAlert)
	assert.Contains(t, types, domain.BulletVenueAccess)
	assert.Contains(t, types, domain.BulletWeatherRisk)

	last, err := a.State.LastPackage()
	require.NoError(t, err)
	want, err := json.Marshal(pkg)
	require.NoError(t, err)
	got, err := json.Marshal(last)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	// The second run is served from the SQLite geocode cache.
	_, err = a.Builder.Build(context.Background(), services.BuildRequest{UseNextEvent: true, BufferMinutes: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.nominatimHits.Load())
}

func TestNewAskUsesContextOnlyAnswers(t *testing.T) {
	f := newFakeUpstreams(t)

	a, err := New(context.Background(), testConfig(f))
	require.NoError(t, err)
	defer a.Close()

	res, err := a.Builder.Ask(context.Background(), services.AskRequest{
		Question:      "How do I get there?",
		BufferMinutes: services.DefaultBufferMinutes,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Context)
	assert.Contains(t, res.Answer, "- "+res.Context.Highlights[0].Text)
}

func TestNewWithRedisFeedCache(t *testing.T) {
	f := newFakeUpstreams(t)
	mr := miniredis.RunT(t)

	cfg := testConfig(f)
	cfg.MockMode = false
	cfg.RedisURL = "redis://" + mr.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, a.Close())
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	f := newFakeUpstreams(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(f)
	cfg.RedisURL = "redis://" + addr

	_, err = New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app: feed cache")
}

func TestNewFailsOnBadCacheSize(t *testing.T) {
	f := newFakeUpstreams(t)
	cfg := testConfig(f)
	cfg.GeocodeCacheSize = 0

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}
