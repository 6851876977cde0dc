package ports

import "context"

// Contract for transit accessibility outages.
type OutageProvider interface {
	// Return a human-readable message for every station token with a known outage.
	OutagesAffecting(ctx context.Context, stations []string) ([]string, error)
}
