package ports

import (
	"context"
	"restaurant-map-service/internal/domain"
)

// Contract for looking up restaurants near a map center.
type PlacesProvider interface {
	// Return restaurants around center, mapped to fetched records.
	NearbyRestaurants(ctx context.Context, center domain.Coordinates) ([]domain.Restaurant, error)
}
