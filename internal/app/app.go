// Package app is the shared composition root of the HTTP and stdio binaries.
// It picks concrete adapters from the configuration and wires them behind ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mobility-context-service/internal/adapters/cache"
	"mobility-context-service/internal/adapters/calendar"
	"mobility-context-service/internal/adapters/directions"
	"mobility-context-service/internal/adapters/geocode"
	"mobility-context-service/internal/adapters/llm"
	"mobility-context-service/internal/adapters/osm"
	"mobility-context-service/internal/adapters/transit"
	"mobility-context-service/internal/adapters/weather"
	"mobility-context-service/internal/config"
	"mobility-context-service/internal/platform/db"
	"mobility-context-service/internal/platform/httpx"
	"mobility-context-service/internal/ports"
	"mobility-context-service/internal/services"
	"mobility-context-service/internal/state"
)

type App struct {
	Builder *services.ContextBuilder
	State   *state.Runtime

	closers []func() error
}

// New builds the application graph. Call Close to release caches and connections.
func New(ctx context.Context, cfg config.Config) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	client := httpx.NewClient(cfg.RequestTimeout, cfg.HTTPMaxAttempts)

	geoCache, err := a.openGeocodeCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	feedCache, err := a.openFeedCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	answers, err := newAnswerGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	collab := services.Collaborators{
		Events:   newEventSource(client, cfg),
		Geocoder: geocode.NewService(geoCache, geocodeBackends(client, cfg)...),
		Venue:    osm.NewOverpass(client, cfg.OverpassURL),
		Answers:  answers,
	}

	// Routes, outages and weather stay deterministic in mock mode or without credentials.
	collab.Routes = directions.NewMockDirections()
	collab.Outages = transit.NewMockOutages()
	collab.Weather = weather.NewMockWeather()
	if !cfg.MockMode {
		if cfg.GoogleMapsAPIKey != "" {
			collab.Routes = directions.NewGoogleDirections(client, cfg.GoogleMapsAPIKey)
		}
		collab.Outages = transit.NewMTAOutages(client, cfg.MTAAPIKey, feedCache, cfg.OutageFeedTTL)
		if cfg.OpenWeatherAPIKey != "" {
			collab.Weather = weather.NewOpenWeather(client, cfg.OpenWeatherAPIKey, cfg.WeatherUnits)
		}
	}

	a.State = state.NewRuntime(cfg.HomeAddress)
	a.Builder = services.NewContextBuilder(collab, a.State, cfg.StationTokens, cfg.HomeAddress)

	log.Printf("app ready mock_mode=%t default_city=%s stations=%d", cfg.MockMode, cfg.DefaultCity, len(cfg.StationTokens))
	return a, nil
}

// Close releases every resource opened by New, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openGeocodeCache prefers Postgres, then SQLite, then an in-process LRU.
func (a *App) openGeocodeCache(ctx context.Context, cfg config.Config) (ports.GeocodeCache, error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app: geocode cache: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		if err := cache.InitPostgresSchema(ctx, conn); err != nil {
			return nil, fmt.Errorf("app: geocode cache: %w", err)
		}
		log.Printf("geocode cache backend=postgres")
		return cache.NewSQLGeocodeCache(conn), nil

	case cfg.DBPath != "":
		conn, err := db.OpenSqlite(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("app: geocode cache: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		if err := cache.InitSqliteSchema(ctx, conn); err != nil {
			return nil, fmt.Errorf("app: geocode cache: %w", err)
		}
		log.Printf("geocode cache backend=sqlite path=%s", cfg.DBPath)
		return cache.NewSqliteGeocodeCache(conn), nil
	}

	lru, err := cache.NewLRUGeocodeCache(cfg.GeocodeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("app: geocode cache: %w", err)
	}
	log.Printf("geocode cache backend=memory size=%d", cfg.GeocodeCacheSize)
	return lru, nil
}

// openFeedCache returns nil (no caching) when REDIS_URL is unset.
func (a *App) openFeedCache(ctx context.Context, cfg config.Config) (ports.FeedCache, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	client, err := cache.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("app: feed cache: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	log.Printf("outage feed cache backend=redis ttl=%s", cfg.OutageFeedTTL)
	return cache.NewRedisFeedCache(client), nil
}

// geocodeBackends orders the lookups Google, ORS, Nominatim; keyed services only when configured.
func geocodeBackends(client *httpx.Client, cfg config.Config) []geocode.Backend {
	var backends []geocode.Backend
	if cfg.GoogleMapsAPIKey != "" {
		backends = append(backends, geocode.NewGoogle(client, cfg.GoogleMapsAPIKey))
	}
	if cfg.ORSAPIKey != "" {
		backends = append(backends, geocode.NewORS(client, cfg.ORSAPIKey))
	}
	return append(backends, geocode.NewNominatim(client, cfg.NominatimURL))
}

func newEventSource(client *httpx.Client, cfg config.Config) ports.EventSource {
	if cfg.CalendarICSURL == "" {
		return calendar.NewFallbackCalendar(nil)
	}
	return calendar.NewFallbackCalendar(calendar.NewICSCalendar(client, cfg.CalendarICSURL))
}

func newAnswerGenerator(ctx context.Context, cfg config.Config) (ports.AnswerGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return llm.ContextOnly{}, nil
	}
	g, err := llm.NewGeminiAnswerer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("app: answers: %w", err)
	}
	return g, nil
}
