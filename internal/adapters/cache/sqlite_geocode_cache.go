package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
)

// SQLite backed cache mapping normalized address strings to places.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached places for the given addresses.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Place{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq))
	for _, a := range uniq {
		ph = append(ph, "?")
		args = append(args, a)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		address,
		lon,
		lat,
		resolved_address
	FROM geocode_cache
	WHERE address IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanPlaces(rows, len(uniq))
}

// Store address -> place mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Place) (err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	return putPlaces(ctx, s.DB, results, `
	INSERT OR REPLACE INTO geocode_cache (
		address,
		lon,
		lat,
		resolved_address
	)
	VALUES (?, ?, ?, ?);
	`)
}
