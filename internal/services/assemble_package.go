package services

import (
	"unicode/utf8"

	"mobility-context-service/internal/domain"
)

const (
	maxHighlights   = 5
	maxRawCitations = 6
)

// AssembleInput holds the fused decision plus event and origin metadata.
// Empty strings are treated as absent.
type AssembleInput struct {
	EventTitle         string
	EventStartISO      string
	EventLocation      string
	OriginLabel        string
	OriginAddress      string
	Bullets            []domain.ContextBullet
	AlternativeSummary string
	RawLinks           []string
	Sources            []string
}

// EstimateTokens approximates LLM token cost at four characters per token, minimum 1.
func EstimateTokens(texts []string) int {
	chars := 0
	for _, t := range texts {
		chars += utf8.RuneCountInString(t)
	}
	return max(1, chars/4)
}

// dedupeLinks drops repeated links, keeping first occurrences in order, and caps the result at limit.
func dedupeLinks(links []string, limit int) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, min(len(links), limit))
	for _, l := range links {
		if len(out) == limit {
			break
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// AssemblePackage builds the externally visible ContextPackage.
//
// Highlights keep only the first five bullets and the rest are dropped silently.
// Assembly never fails.
func AssemblePackage(in AssembleInput) *domain.ContextPackage {
	highlights := make([]domain.ContextBullet, 0, maxHighlights)
	highlights = append(highlights, in.Bullets[:min(len(in.Bullets), maxHighlights)]...)

	alternatives := []domain.AlternativeRoute{}
	if in.AlternativeSummary != "" {
		citations := make([]string, 0, 1)
		citations = append(citations, in.RawLinks[:min(len(in.RawLinks), 1)]...)
		alternatives = append(alternatives, domain.AlternativeRoute{
			Summary:   in.AlternativeSummary,
			Citations: citations,
		})
	}

	texts := make([]string, 0, len(highlights)+1)
	for _, b := range highlights {
		texts = append(texts, b.Text)
	}
	if in.AlternativeSummary != "" {
		texts = append(texts, in.AlternativeSummary)
	}

	sources := make([]string, 0, len(in.Sources))
	sources = append(sources, in.Sources...)

	return &domain.ContextPackage{
		QueryIntent: domain.QueryIntentRouteToEvent,
		SourcesUsed: sources,
		Event: domain.EventRef{
			Title:        domain.Optional(in.EventTitle),
			StartTimeISO: domain.Optional(in.EventStartISO),
			LocationText: domain.Optional(in.EventLocation),
		},
		Origin: domain.OriginRef{
			Label:   domain.Optional(in.OriginLabel),
			Address: domain.Optional(in.OriginAddress),
		},
		Highlights:    highlights,
		Alternatives:  alternatives,
		RawCitations:  dedupeLinks(in.RawLinks, maxRawCitations),
		TokenEstimate: EstimateTokens(texts),
		Meta:          map[string]any{},
	}
}
