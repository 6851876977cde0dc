package llm

import (
	"context"
	"strings"

	"mobility-context-service/internal/domain"
)

const maxAnswerLines = 5

// FallbackAnswer renders the package highlights as a bullet list, plus the first alternative.
func FallbackAnswer(pkg *domain.ContextPackage) string {
	if pkg == nil {
		return ""
	}
	lines := make([]string, 0, maxAnswerLines+1)
	for _, b := range pkg.Highlights[:min(len(pkg.Highlights), maxAnswerLines)] {
		lines = append(lines, "- "+b.Text)
	}
	if len(pkg.Alternatives) > 0 {
		lines = append(lines, "- Alternative: "+pkg.Alternatives[0].Summary)
	}
	return strings.Join(lines, "\n")
}

// ContextOnly answers from the package alone. Used when no LLM is configured.
type ContextOnly struct{}

func (ContextOnly) Answer(_ context.Context, _ string, pkg *domain.ContextPackage) string {
	return FallbackAnswer(pkg)
}
