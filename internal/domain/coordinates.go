package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// A geocoded location: coordinates plus the provider's formatted address.
type Place struct {
	Coordinates
	ResolvedAddress string
}
