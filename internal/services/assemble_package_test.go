package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobility-context-service/internal/domain"
)

func textBullets(n int, width int) []domain.ContextBullet {
	out := make([]domain.ContextBullet, 0, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("%d%s", i, strings.Repeat("x", width-1))
		out = append(out, domain.ContextBullet{Type: domain.BulletWeatherRisk, Text: text, Citations: []string{}})
	}
	return out
}

func TestAssemblePackageTruncatesHighlights(t *testing.T) {
	bullets := textBullets(7, 8)

	pkg := AssemblePackage(AssembleInput{Bullets: bullets})

	require.Len(t, pkg.Highlights, 5)
	assert.Equal(t, bullets[:5], pkg.Highlights)
	// Only the five retained highlights count: 5 * 8 chars / 4.
	assert.Equal(t, 10, pkg.TokenEstimate)
}

func TestAssemblePackageDedupesCitations(t *testing.T) {
	pkg := AssemblePackage(AssembleInput{
		RawLinks: []string{"A", "B", "A", "C", "A", "D", "E", "F"},
	})
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, pkg.RawCitations)

	pkg = AssemblePackage(AssembleInput{
		RawLinks: []string{"A", "B", "A", "C", "D", "E", "F", "G", "H"},
	})
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, pkg.RawCitations)
}

func TestAssemblePackageTokenEstimate(t *testing.T) {
	bullets := []domain.ContextBullet{
		{Type: domain.BulletRouteSummary, Text: strings.Repeat("a", 25)},
		{Type: domain.BulletWeatherRisk, Text: strings.Repeat("b", 15)},
	}

	assert.Equal(t, 10, AssemblePackage(AssembleInput{Bullets: bullets}).TokenEstimate)
	assert.Equal(t, 12, AssemblePackage(AssembleInput{Bullets: bullets, AlternativeSummary: "12345678"}).TokenEstimate)
	assert.Equal(t, 1, AssemblePackage(AssembleInput{}).TokenEstimate)
	assert.Equal(t, 1, EstimateTokens([]string{"abc"}))
	// Characters, not bytes.
	assert.Equal(t, 1, EstimateTokens([]string{"→→→→"}))
}

func TestAssemblePackageAlternative(t *testing.T) {
	pkg := AssemblePackage(AssembleInput{
		AlternativeSummary: "M1 → M4 accessible bus (65 min, 1 transfer)",
		RawLinks:           []string{"https://maps.example/1", "https://openweathermap.org/"},
	})
	require.Len(t, pkg.Alternatives, 1)
	assert.Equal(t, "M1 → M4 accessible bus (65 min, 1 transfer)", pkg.Alternatives[0].Summary)
	assert.Equal(t, []string{"https://maps.example/1"}, pkg.Alternatives[0].Citations)

	pkg = AssemblePackage(AssembleInput{AlternativeSummary: "Walk"})
	require.Len(t, pkg.Alternatives, 1)
	assert.NotNil(t, pkg.Alternatives[0].Citations)
	assert.Empty(t, pkg.Alternatives[0].Citations)
}

func TestAssemblePackageMetadata(t *testing.T) {
	pkg := AssemblePackage(AssembleInput{
		EventTitle:    "Museum Visit",
		EventStartISO: "2025-11-08T16:00:00-05:00",
		OriginLabel:   "Home",
		OriginAddress: "350 5th Ave, New York, NY",
		Sources:       []string{"directions", "openweather"},
	})

	assert.Equal(t, domain.QueryIntentRouteToEvent, pkg.QueryIntent)
	assert.Equal(t, []string{"directions", "openweather"}, pkg.SourcesUsed)
	require.NotNil(t, pkg.Event.Title)
	assert.Equal(t, "Museum Visit", *pkg.Event.Title)
	assert.Nil(t, pkg.Event.LocationText)
	require.NotNil(t, pkg.Origin.Address)
	assert.Equal(t, "350 5th Ave, New York, NY", *pkg.Origin.Address)
	assert.NotNil(t, pkg.Meta)
	assert.Empty(t, pkg.Meta)
}
