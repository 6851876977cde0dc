package transit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/adapters/cache"
	"mobility-context-service/internal/platform/httpx"
)

var tokens = []string{"86 St (Q)", "Times Sq-42 St", "57 St", "96 St"}

func TestParseOutageFeedWeights(t *testing.T) {
	got, err := ParseOutageFeed([]byte(`[
		{"station":"86 St (Q)","equipmenttype":"EL"},
		{"station":"57 St","equipmenttype":"ES"},
		{"station":"96 St","equipmenttype":"es"},
		{"station":"96 St","equipmenttype":"ES"},
		{"station":"  ","equipmenttype":"EL"},
		{"station":42},
		"garbage"
	]`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"86 St (Q)": "Multiple accessibility equipment outages",
		"57 St":     "Accessibility equipment outage",
		"96 St":     "Multiple accessibility equipment outages",
	}, got)
}

func TestParseOutageFeedRejectsNonArray(t *testing.T) {
	_, err := ParseOutageFeed([]byte(`{"error":"nope"}`))
	require.Error(t, err)
}

func TestMockOutages(t *testing.T) {
	got, err := NewMockOutages().OutagesAffecting(context.Background(), tokens)
	require.NoError(t, err)
	assert.Equal(t, []string{"Elevator outage at 86 St (Q)"}, got)

	got, err = NewMockOutages().OutagesAffecting(context.Background(), []string{"57 St"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func feedServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "mta-key", r.Header.Get("x-api-key"))
		switch r.URL.Path {
		case "/current":
			_, _ = w.Write([]byte(`[{"station":"57 St","equipmenttype":"ES"},{"station":"96 St","equipmenttype":"EL"}]`))
		case "/upcoming":
			_, _ = w.Write([]byte(`[{"station":"Times Sq-42 St","equipmenttype":"ES"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMTAOutagesMatchesTokensInOrder(t *testing.T) {
	var calls atomic.Int32
	srv := feedServer(t, &calls)

	m := NewMTAOutages(httpx.NewClient(time.Second, 1), "mta-key", nil, time.Minute)
	m.FeedURLs = []string{srv.URL + "/current", srv.URL + "/upcoming"}

	got, err := m.OutagesAffecting(context.Background(), tokens)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Elevator outage at Times Sq-42 St",
		"Elevator outage at 57 St",
		"Elevator outage at 96 St",
	}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMTAOutagesUsesFeedCache(t *testing.T) {
	var calls atomic.Int32
	srv := feedServer(t, &calls)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := NewMTAOutages(httpx.NewClient(time.Second, 1), "mta-key", cache.NewRedisFeedCache(client), time.Minute)
	m.FeedURLs = []string{srv.URL + "/current", srv.URL + "/upcoming"}

	for i := 0; i < 3; i++ {
		got, err := m.OutagesAffecting(context.Background(), tokens)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestMTAOutagesFeedFailure(t *testing.T) {
	var calls atomic.Int32
	srv := feedServer(t, &calls)

	m := NewMTAOutages(httpx.NewClient(time.Second, 1), "mta-key", nil, time.Minute)
	m.FeedURLs = []string{srv.URL + "/current", srv.URL + "/missing"}

	_, err := m.OutagesAffecting(context.Background(), tokens)
	require.Error(t, err)
}
