package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/adapters/cache"
	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/httpx"
)

func newClient() *httpx.Client { return httpx.NewClient(time.Second, 1) }

type stubBackend struct {
	name  string
	place *domain.Place
	err   error
	calls int
	seen  []string
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Lookup(_ context.Context, address string) (*domain.Place, error) {
	s.calls++
	s.seen = append(s.seen, address)
	return s.place, s.err
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1000 5th Ave, New York", Normalize("  1000   5th Ave,\tNew York \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestServiceFallsThroughBackends(t *testing.T) {
	failing := &stubBackend{name: "google", err: errors.New("quota")}
	empty := &stubBackend{name: "ors"}
	hit := &stubBackend{name: "nominatim", place: &domain.Place{Coordinates: domain.Coordinates{Lon: -73.96, Lat: 40.78}}}

	svc := NewService(nil, failing, empty, hit)
	p, err := svc.Geocode(context.Background(), "  The   Met ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, -73.96, p.Lon)
	assert.Equal(t, "The Met", p.ResolvedAddress)
	assert.Equal(t, []string{"The Met"}, hit.seen)
}

func TestServiceNoHit(t *testing.T) {
	svc := NewService(nil, &stubBackend{name: "a"}, &stubBackend{name: "b", err: errors.New("down")})
	p, err := svc.Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestServiceBlankAddress(t *testing.T) {
	b := &stubBackend{name: "a"}
	p, err := NewService(nil, b).Geocode(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, b.calls)
}

func TestServiceUsesCache(t *testing.T) {
	lru, err := cache.NewLRUGeocodeCache(8)
	require.NoError(t, err)

	b := &stubBackend{name: "a", place: &domain.Place{Coordinates: domain.Coordinates{Lon: 1, Lat: 2}, ResolvedAddress: "X"}}
	svc := NewService(lru, b)

	for i := 0; i < 3; i++ {
		p, err := svc.Geocode(context.Background(), "Some Place")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "X", p.ResolvedAddress)
	}
	assert.Equal(t, 1, b.calls)

	p, err := svc.Geocode(context.Background(), "some   place")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, b.calls)
}

func TestGoogleLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000 5th Ave", r.URL.Query().Get("address"))
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"1000 5th Ave, New York, NY","geometry":{"location":{"lat":40.7794,"lng":-73.9632}}}]}`))
	}))
	defer srv.Close()

	g := NewGoogle(newClient(), "gkey")
	g.BaseURL = srv.URL

	p, err := g.Lookup(context.Background(), "1000 5th Ave")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, domain.Coordinates{Lon: -73.9632, Lat: 40.7794}, p.Coordinates)
	assert.Equal(t, "1000 5th Ave, New York, NY", p.ResolvedAddress)
}

func TestGoogleLookupZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	g := NewGoogle(newClient(), "gkey")
	g.BaseURL = srv.URL

	p, err := g.Lookup(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestORSLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "okey", r.Header.Get("Authorization"))
		assert.Equal(t, "US", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-73.9632,40.7794]},"properties":{"label":"The Met"}}]}`))
	}))
	defer srv.Close()

	o := NewORS(newClient(), "okey")
	o.BaseURL = srv.URL

	p, err := o.Lookup(context.Background(), "The Met")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, -73.9632, p.Lon)
	assert.Equal(t, "The Met", p.ResolvedAddress)
}

func TestORSLookupBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1]}}]}`))
	}))
	defer srv.Close()

	o := NewORS(newClient(), "okey")
	o.BaseURL = srv.URL

	_, err := o.Lookup(context.Background(), "x")
	require.Error(t, err)
}

func TestNominatimLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, httpx.UserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"40.7794","lon":"-73.9632","display_name":"Metropolitan Museum of Art"}]`))
	}))
	defer srv.Close()

	p, err := NewNominatim(newClient(), srv.URL).Lookup(context.Background(), "the met")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 40.7794, p.Lat)
	assert.Equal(t, "Metropolitan Museum of Art", p.ResolvedAddress)
}

func TestNominatimUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewNominatim(newClient(), srv.URL).Lookup(context.Background(), "the met")
	require.Error(t, err)
}
