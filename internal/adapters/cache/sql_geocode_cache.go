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

// SQLGeocodeCache is a Postgres-backed cache mapping normalized addresses to places.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached places for the given addresses. Misses are simply absent from the map.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.cache.pg.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Place{}, nil
	}

	q := `
	SELECT address, lon, lat, resolved_address
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanPlaces(rows, len(uniq))
}

// Store address -> place mappings, replacing existing rows.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Place) (err error) {
	defer obs.Time(ctx, "geocode.cache.pg.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	return putPlaces(ctx, s.DB, results, `
	INSERT INTO geocode_cache (address, lon, lat, resolved_address)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		resolved_address = EXCLUDED.resolved_address,
		updated_at = now();
	`)
}

func uniqueKeys(addresses []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}
	return uniq
}

func scanPlaces(rows *sql.Rows, sizeHint int) (map[string]domain.Place, error) {
	out := make(map[string]domain.Place, sizeHint)
	for rows.Next() {
		var addr, resolved string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat, &resolved); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Place{
			Coordinates:     domain.Coordinates{Lon: lon, Lat: lat},
			ResolvedAddress: resolved,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}

func putPlaces(ctx context.Context, db *sql.DB, results map[string]domain.Place, upsert string) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, p := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, addr, p.Lon, p.Lat, p.ResolvedAddress); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
