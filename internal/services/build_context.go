package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/ports"
)

const (
	DefaultBufferMinutes = 20
	defaultTripTitle     = "Planned Trip"
	originLabel          = "Home"
)

// Sources reported on every package, in this order.
var packageSources = []string{"directions", "gtfs_rt_elevators", "osm_overpass", "openweather"}

// City is accepted for API compatibility; it only tags the trace span.
type BuildRequest struct {
	UseNextEvent  bool
	Query         string
	Origin        string
	Destination   string
	ArrivalISO    string
	BufferMinutes int
	City          string
}

type AskRequest struct {
	Question      string
	Origin        string
	BufferMinutes int
}

type AskResult struct {
	Answer  string
	Context *domain.ContextPackage
}

// Collaborators wires every external dependency the builder consults.
type Collaborators struct {
	Events   ports.EventSource
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Outages  ports.OutageProvider
	Venue    ports.VenueAccessProvider
	Weather  ports.WeatherProvider
	Answers  ports.AnswerGenerator
}

// ContextBuilder runs the full request pipeline: resolve event and origin, geocode,
// fetch routes, gather signals, fuse, assemble and record the result.
type ContextBuilder struct {
	c             Collaborators
	state         ports.RuntimeStore
	stationTokens []string
	defaultHome   string
}

func NewContextBuilder(c Collaborators, state ports.RuntimeStore, stationTokens []string, defaultHome string) *ContextBuilder {
	return &ContextBuilder{
		c:             c,
		state:         state,
		stationTokens: stationTokens,
		defaultHome:   defaultHome,
	}
}

type resolvedTrip struct {
	title       string
	startISO    string
	destination string
	origin      string
}

func (b *ContextBuilder) resolve(ctx context.Context, req BuildRequest) (resolvedTrip, error) {
	var trip resolvedTrip

	if req.UseNextEvent {
		ev, err := b.c.Events.NextEvent(ctx)
		if err != nil {
			return trip, fmt.Errorf("next event: %w", err)
		}
		if ev != nil {
			trip.title, trip.startISO, trip.destination = ev.Title, ev.StartISO, ev.Location
		}
	} else {
		trip.title = req.Query
		if trip.title == "" {
			trip.title = defaultTripTitle
		}
		trip.startISO = req.ArrivalISO
		trip.destination = req.Destination
	}

	trip.origin = firstNonBlank(req.Origin, b.state.HomeAddress(), b.defaultHome)

	if strings.TrimSpace(trip.destination) == "" {
		return trip, ErrMissingDestination
	}
	if trip.origin == "" {
		return trip, ErrMissingOrigin
	}
	return trip, nil
}

// Build produces a context package for one trip and stores it as the last package.
func (b *ContextBuilder) Build(ctx context.Context, req BuildRequest) (_ *domain.ContextPackage, err error) {
	ctx, end := obs.StartSpan(ctx, "context.build",
		attribute.Bool("use_next_event", req.UseNextEvent),
		attribute.String("city", req.City),
	)
	defer end(&err)
	defer obs.Time(ctx, "context.Build")(&err)

	trip, err := b.resolve(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	dest, err := b.c.Geocoder.Geocode(ctx, trip.destination)
	if err != nil {
		return nil, fmt.Errorf("build context: %w: %w", ErrGeocodeFailed, err)
	}
	if dest == nil {
		return nil, fmt.Errorf("build context: %w", ErrGeocodeFailed)
	}

	candidates, err := b.c.Routes.CandidateRoutes(ctx, trip.origin, dest.ResolvedAddress, trip.startISO)
	if err != nil {
		return nil, fmt.Errorf("build context: candidate routes: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("build context: %w", ErrNoRoutes)
	}

	var (
		outages []string
		venue   *domain.VenueAccess
		weather domain.WeatherRisk
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outages, err = b.c.Outages.OutagesAffecting(gctx, b.stationTokens)
		if err != nil {
			return fmt.Errorf("transit outages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		venue, err = b.c.Venue.WheelchairAccess(gctx, dest.Coordinates)
		if err != nil {
			return fmt.Errorf("venue access: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weather, err = b.c.Weather.WeatherRisk(gctx, dest.Coordinates, trip.startISO)
		if err != nil {
			return fmt.Errorf("weather risk: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	fused := FuseContext(FuseInput{
		Candidates:    candidates,
		ArrivalISO:    trip.startISO,
		BufferMinutes: req.BufferMinutes,
		OutageTexts:   outages,
		Venue:         venue,
		WeatherRisk:   weather.Text,
	})

	altSummary := ""
	if fused.Alternative != nil {
		altSummary = fused.Alternative.Summary
	}

	pkg := AssemblePackage(AssembleInput{
		EventTitle:         trip.title,
		EventStartISO:      trip.startISO,
		EventLocation:      dest.ResolvedAddress,
		OriginLabel:        originLabel,
		OriginAddress:      trip.origin,
		Bullets:            fused.Bullets,
		AlternativeSummary: altSummary,
		RawLinks:           fused.RawLinks,
		Sources:            packageSources,
	})

	if err := b.state.StoreLastPackage(pkg); err != nil {
		return nil, fmt.Errorf("build context: store last package: %w", err)
	}
	return pkg, nil
}

// Ask builds a package for the next calendar event and answers question from it.
func (b *ContextBuilder) Ask(ctx context.Context, req AskRequest) (AskResult, error) {
	pkg, err := b.Build(ctx, BuildRequest{
		UseNextEvent:  true,
		Query:         req.Question,
		Origin:        req.Origin,
		BufferMinutes: req.BufferMinutes,
	})
	if err != nil {
		return AskResult{}, err
	}

	return AskResult{
		Answer:  b.c.Answers.Answer(ctx, req.Question, pkg),
		Context: pkg,
	}, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
