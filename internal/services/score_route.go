package services

import "mobility-context-service/internal/domain"

// ScoreRoute rates a route candidate; higher is better and the result may be negative.
//
// Outage hits carry the heaviest penalty. Duration and transfers are linear
// soft penalties. The mode bonuses are heuristic priors, not measured
// accessibility data.
func ScoreRoute(candidate domain.RouteCandidate, outageHits int, weatherPenalty int) float64 {
	score := 100.0
	score -= float64(candidate.DurationMin) * 0.5
	score -= float64(candidate.Transfers) * 5.0
	score -= float64(outageHits) * 30.0
	score -= float64(weatherPenalty) * 5.0

	switch candidate.Mode {
	case domain.ModeDrive:
		score += 5.0
	case domain.ModeBus:
		score += 2.0
	case domain.ModeTransit:
	}

	return score
}
