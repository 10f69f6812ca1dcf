package ports

import (
	"context"
	"restaurant-map-service/internal/domain"
)

// Cache of nearby-search responses keyed by a normalized lookup key.
// It never holds the working set, only what the places service returned.
type PlacesCache interface {
	// Return the cached records and whether a fresh entry was found.
	Get(ctx context.Context, key string) ([]domain.Restaurant, bool, error)
	// Store records for key, replacing any previous entry.
	Put(ctx context.Context, key string, restaurants []domain.Restaurant) error
}
