// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read once at startup and passed by value to the composition roots.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	MockMode          bool          `env:"MOCK_MODE" envDefault:"true"`
	HomeAddress       string        `env:"HOME_ADDRESS"`
	DefaultCity       string        `env:"DEFAULT_CITY" envDefault:"nyc"`
	CalendarICSURL    string        `env:"GOOGLE_CALENDAR_ICS_URL"`
	GoogleMapsAPIKey  string        `env:"GOOGLE_MAPS_API_KEY"`
	ORSAPIKey         string        `env:"ORS_API_KEY"`
	NominatimURL      string        `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org/search"`
	OpenWeatherAPIKey string        `env:"OPENWEATHER_API_KEY"`
	WeatherUnits      string        `env:"WEATHER_UNITS" envDefault:"metric"`
	MTAAPIKey         string        `env:"MTA_API_KEY"`
	OverpassURL       string        `env:"OSM_OVERPASS_URL" envDefault:"https://overpass-api.de/api/interpreter"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3s"`
	HTTPMaxAttempts   int           `env:"HTTP_MAX_ATTEMPTS" envDefault:"1"`
	StationTokens     []string      `env:"STATION_TOKENS" envDefault:"86 St (Q);Times Sq-42 St;57 St;96 St" envSeparator:";"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBPath            string        `env:"DB_PATH"`
	GeocodeCacheSize  int           `env:"GEOCODE_CACHE_SIZE" envDefault:"1024"`
	RedisURL          string        `env:"REDIS_URL"`
	OutageFeedTTL     time.Duration `env:"OUTAGE_FEED_TTL" envDefault:"2m"`
	OTELEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName   string        `env:"OTEL_SERVICE_NAME" envDefault:"mobility-context"`
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.StationTokens = trimTokens(cfg.StationTokens)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	if c.HTTPMaxAttempts < 1 {
		return errors.New("config: HTTP_MAX_ATTEMPTS must be at least 1")
	}
	if c.GeocodeCacheSize < 1 {
		return errors.New("config: GEOCODE_CACHE_SIZE must be at least 1")
	}
	if c.OutageFeedTTL <= 0 {
		return errors.New("config: OUTAGE_FEED_TTL must be positive")
	}
	if strings.TrimSpace(c.DatabaseURL) != "" && strings.TrimSpace(c.DBPath) != "" {
		return errors.New("config: set at most one of DATABASE_URL and DB_PATH")
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func trimTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
