package ports

import (
	"context"
	"mobility-context-service/internal/domain"
)

// Contract for turning a context package into a natural-language answer.
// Implementations must not fail: on any internal error they degrade to a
// deterministic answer built from the package itself.
type AnswerGenerator interface {
	Answer(ctx context.Context, question string, pkg *domain.ContextPackage) string
}
