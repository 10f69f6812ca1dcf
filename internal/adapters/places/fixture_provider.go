package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"restaurant-map-service/internal/domain"
)

// FixtureProvider serves nearby searches from a recorded Nearby Search
// response on disk. Useful for local runs without an API key.
type FixtureProvider struct {
	places       []domain.Restaurant
	radiusMeters int
}

// LoadFixtureProvider reads a JSON file shaped like a Nearby Search response.
func LoadFixtureProvider(path string, radiusMeters int) (*FixtureProvider, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load places fixture: read %q: %w", path, err)
	}

	var decoded nearbyResponse
	if err := json.Unmarshal(bytes, &decoded); err != nil {
		return nil, fmt.Errorf("load places fixture: parse json: %w", err)
	}

	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	return &FixtureProvider{places: toRestaurants(decoded.Results), radiusMeters: radiusMeters}, nil
}

// Places returns every restaurant in the fixture.
func (f *FixtureProvider) Places() []domain.Restaurant {
	out := make([]domain.Restaurant, len(f.places))
	copy(out, f.places)
	return out
}

// Return fixture restaurants within the radius of center, in file order.
func (f *FixtureProvider) NearbyRestaurants(ctx context.Context, center domain.Coordinates) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Restaurant, 0, len(f.places))
	for _, p := range f.places {
		if distanceMeters(center, p.Location) <= float64(f.radiusMeters) {
			out = append(out, p)
		}
	}
	return out, nil
}

const earthRadiusMeters = 6371000.0

// distanceMeters is the haversine great-circle distance between a and b.
func distanceMeters(a, b domain.Coordinates) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
