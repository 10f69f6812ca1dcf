package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"restaurant-map-service/internal/domain"
	"strings"
	"time"
)

// SQLite backed cache of nearby-search results, for local runs.
// Keys are expected to be normalized by the caller.
type SqlitePlacesCache struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

func NewSqlitePlacesCache(db *sql.DB, ttl time.Duration) *SqlitePlacesCache {
	return &SqlitePlacesCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch the cached lookup for key if it has not expired.
func (s *SqlitePlacesCache) Get(ctx context.Context, key string) ([]domain.Restaurant, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("places cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get places cache: key must not be empty")
	}

	q := `
	SELECT
        payload,
        fetched_at
    FROM places_cache
    WHERE cache_key = ?;
	`

	var payload string
	var fetchedAt int64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get places cache: query places_cache table: %w", err)
	}

	if expired(s.now(), fetchedAt, s.TTL) {
		return nil, false, nil
	}

	rs, err := decodeRestaurants(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get places cache key=%q: %w", key, err)
	}

	return rs, true, nil
}

// Store the lookup for key, replacing any previous entry.
func (s *SqlitePlacesCache) Put(ctx context.Context, key string, restaurants []domain.Restaurant) error {
	if s.DB == nil {
		return errors.New("places cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert places cache: key must not be empty")
	}

	payload, err := encodeRestaurants(restaurants)
	if err != nil {
		return fmt.Errorf("insert places cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO places_cache (
        cache_key,
        payload,
        fetched_at
    )
    VALUES (?, ?, ?);
	`, key, payload, s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert places cache key=%q: %w", key, err)
	}

	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (s *SqlitePlacesCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("places cache: db is nil")
	}

	cutoff := s.now().Add(-s.TTL).Unix()
	res, err := s.DB.ExecContext(ctx, `DELETE FROM places_cache WHERE fetched_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge places cache: %w", err)
	}
	return res.RowsAffected()
}
