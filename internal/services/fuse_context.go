package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"mobility-context-service/internal/domain"
)

// Fixed citation URLs for the signal sources behind each bullet.
const (
	TransitOutageSourceURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fnyct_ene.json"
	VenueTagSourceURL      = "https://overpass-api.de/api/interpreter"
	WeatherSourceURL       = "https://openweathermap.org/"
)

const outageAdvice = ". Consider alternate stations if applicable."

// FuseInput carries every signal gathered for one trip.
// Zero values mean "signal absent": no arrival time, no outages, no venue tag, no weather risk.
type FuseInput struct {
	Candidates    []domain.RouteCandidate
	ArrivalISO    string
	BufferMinutes int
	OutageTexts   []string
	Venue         *domain.VenueAccess
	WeatherRisk   string
}

// FusedDecision is the outcome of one fusion pass.
// Best and Alternative are nil when fewer candidates were supplied;
// LeaveByISO is empty when no leave-by time could be computed.
type FusedDecision struct {
	Best        *domain.RouteCandidate
	Alternative *domain.RouteCandidate
	Bullets     []domain.ContextBullet
	RawLinks    []string
	LeaveByISO  string
}

// ScoredRoute pairs a candidate with its outage hit count and score.
type ScoredRoute struct {
	Candidate  domain.RouteCandidate
	OutageHits int
	Score      float64
}

// CountOutageHits counts the outage texts that appear, case-insensitively, in summary.
// This is a text heuristic with no station topology behind it, so a route through an
// affected station is missed whenever its summary does not literally name it.
func CountOutageHits(summary string, outageTexts []string) int {
	lower := strings.ToLower(summary)
	hits := 0
	for _, t := range outageTexts {
		if strings.Contains(lower, strings.ToLower(t)) {
			hits++
		}
	}
	return hits
}

// RankCandidates scores every candidate and stable-sorts them by descending score.
// Equal scores keep their input order.
func RankCandidates(candidates []domain.RouteCandidate, outageTexts []string, weatherPenalty int) []ScoredRoute {
	scored := make([]ScoredRoute, 0, len(candidates))
	for _, c := range candidates {
		hits := CountOutageHits(c.Summary, outageTexts)
		scored = append(scored, ScoredRoute{
			Candidate:  c,
			OutageHits: hits,
			Score:      ScoreRoute(c, hits, weatherPenalty),
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredRoute) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return scored
}

// FuseContext ranks the candidates and turns the gathered signals into an ordered
// list of bullets: route summary, accessibility alert, venue access, weather risk,
// buffer recommendation. Categories without content are skipped. It never fails.
func FuseContext(in FuseInput) FusedDecision {
	// Weather reflects conditions at the destination, so it penalizes every candidate alike.
	weatherPenalty := 0
	if in.WeatherRisk != "" {
		weatherPenalty = 1
	}

	ranked := RankCandidates(in.Candidates, in.OutageTexts, weatherPenalty)

	var best, alt *domain.RouteCandidate
	if len(ranked) > 0 {
		c := ranked[0].Candidate
		best = &c
	}
	if len(ranked) > 1 {
		c := ranked[1].Candidate
		alt = &c
	}

	bullets := make([]domain.ContextBullet, 0, 5)
	rawLinks := make([]string, 0, 4)

	if best != nil {
		citations := []string{}
		if best.MapsURL != "" {
			citations = append(citations, best.MapsURL)
			rawLinks = append(rawLinks, best.MapsURL)
		}
		bullets = append(bullets, domain.ContextBullet{
			Type:      domain.BulletRouteSummary,
			Text:      best.Summary + ".",
			Citations: citations,
		})
	}

	if len(in.OutageTexts) > 0 {
		bullets = append(bullets, domain.ContextBullet{
			Type:      domain.BulletAccessibilityAlert,
			Text:      strings.Join(in.OutageTexts, "; ") + outageAdvice,
			Citations: []string{TransitOutageSourceURL},
		})
		rawLinks = append(rawLinks, TransitOutageSourceURL)
	}

	if in.Venue != nil {
		text := fmt.Sprintf("Destination wheelchair access: %s", in.Venue.Wheelchair)
		if in.Venue.Note != "" {
			text += " — " + in.Venue.Note
		}
		bullets = append(bullets, domain.ContextBullet{
			Type:      domain.BulletVenueAccess,
			Text:      text,
			Citations: []string{VenueTagSourceURL},
		})
		rawLinks = append(rawLinks, VenueTagSourceURL)
	}

	if in.WeatherRisk != "" {
		bullets = append(bullets, domain.ContextBullet{
			Type:      domain.BulletWeatherRisk,
			Text:      in.WeatherRisk,
			Citations: []string{WeatherSourceURL},
		})
		rawLinks = append(rawLinks, WeatherSourceURL)
	}

	duration := 0
	if best != nil {
		duration = best.DurationMin
	}
	leaveBy, ok := ComputeLeaveBy(in.ArrivalISO, duration, in.BufferMinutes)
	if ok {
		bullets = append(bullets, domain.ContextBullet{
			Type:      domain.BulletBufferRecommendation,
			Text:      fmt.Sprintf("Leave by %s to keep a %d minute buffer.", leaveBy, in.BufferMinutes),
			Citations: []string{},
		})
	}

	return FusedDecision{
		Best:        best,
		Alternative: alt,
		Bullets:     bullets,
		RawLinks:    rawLinks,
		LeaveByISO:  leaveBy,
	}
}
