package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/domain"
)

func TestRuntimeHomeAddress(t *testing.T) {
	rt := NewRuntime("350 5th Ave")
	assert.Equal(t, "350 5th Ave", rt.HomeAddress())

	rt.SetHomeAddress("1 Main St")
	assert.Equal(t, "1 Main St", rt.HomeAddress())
}

func TestRuntimeLastPackageIsCopied(t *testing.T) {
	rt := NewRuntime("")

	last, err := rt.LastPackage()
	require.NoError(t, err)
	assert.Nil(t, last)

	pkg := &domain.ContextPackage{
		QueryIntent: domain.QueryIntentRouteToEvent,
		SourcesUsed: []string{"directions"},
		Highlights: []domain.ContextBullet{
			{Type: domain.BulletRouteSummary, Text: "Taxi.", Citations: []string{}},
		},
		Alternatives:  []domain.AlternativeRoute{},
		RawCitations:  []string{},
		TokenEstimate: 1,
		Meta:          map[string]any{},
	}
	require.NoError(t, rt.StoreLastPackage(pkg))

	pkg.Highlights[0].Text = "mutated"

	got, err := rt.LastPackage()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Taxi.", got.Highlights[0].Text)

	got.SourcesUsed[0] = "changed"
	again, err := rt.LastPackage()
	require.NoError(t, err)
	assert.Equal(t, "directions", again.SourcesUsed[0])
}

func TestRuntimeConcurrentAccess(t *testing.T) {
	rt := NewRuntime("")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = rt.StoreLastPackage(&domain.ContextPackage{QueryIntent: domain.QueryIntentRouteToEvent, TokenEstimate: 1})
			rt.SetHomeAddress("somewhere")
		}()
		go func() {
			defer wg.Done()
			_, _ = rt.LastPackage()
			_ = rt.HomeAddress()
		}()
	}
	wg.Wait()

	got, err := rt.LastPackage()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TokenEstimate)
}
