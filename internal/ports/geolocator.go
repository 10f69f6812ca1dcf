package ports

import (
	"context"
	"restaurant-map-service/internal/domain"
)

// Source of the user's current position, used once to center the map.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}
