package ports

import "mobility-context-service/internal/domain"

// Process-wide runtime slots: the configured home address and the last package built.
type RuntimeStore interface {
	HomeAddress() string
	StoreLastPackage(pkg *domain.ContextPackage) error
}
