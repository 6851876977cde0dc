package services

import "errors"

// Client errors: the request cannot be served as given.
var (
	ErrMissingDestination = errors.New("destination is required")
	ErrMissingOrigin      = errors.New("origin is required (set HOME_ADDRESS or pass 'origin')")
	ErrGeocodeFailed      = errors.New("failed to geocode destination")
)

// ErrNoRoutes means the route provider produced no candidates.
var ErrNoRoutes = errors.New("no routes available")
