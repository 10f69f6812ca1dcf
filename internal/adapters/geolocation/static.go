package geolocation

import (
	"context"
	"errors"
	"restaurant-map-service/internal/domain"
)

var ErrNoPosition = errors.New("no position configured")

// StaticGeolocator reports a fixed, configured position.
type StaticGeolocator struct {
	pos *domain.Coordinates
}

// NewStaticGeolocator returns a geolocator for pos; a nil pos always fails.
func NewStaticGeolocator(pos *domain.Coordinates) *StaticGeolocator {
	return &StaticGeolocator{pos: pos}
}

func (g *StaticGeolocator) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if g.pos == nil {
		return domain.Coordinates{}, ErrNoPosition
	}
	return *g.pos, nil
}
