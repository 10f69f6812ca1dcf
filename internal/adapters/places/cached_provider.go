package places

import (
	"context"
	"fmt"
	"log"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/metrics"
	"restaurant-map-service/internal/platform/obs"
	"restaurant-map-service/internal/ports"
)

// CachedProvider consults a PlacesCache before delegating to the wrapped provider.
// Centers are rounded to 4 decimals (about 11 m) to form the cache key.
type CachedProvider struct {
	inner  ports.PlacesProvider
	cache  ports.PlacesCache
	prefix string
}

func NewCachedProvider(inner ports.PlacesProvider, cache ports.PlacesCache, prefix string) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, prefix: prefix}
}

// CacheKey normalizes center into the key used by the places cache.
func (c *CachedProvider) CacheKey(center domain.Coordinates) string {
	return fmt.Sprintf("%s:%.4f,%.4f", c.prefix, center.Lat, center.Lng)
}

func (c *CachedProvider) NearbyRestaurants(
	ctx context.Context,
	center domain.Coordinates,
) (_ []domain.Restaurant, err error) {
	defer obs.Time(ctx, "places.cached.NearbyRestaurants")(&err)

	key := c.CacheKey(center)

	if c.cache != nil {
		hit, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("places cache get %q: %w", key, err)
		}
		if ok {
			metrics.PlacesCacheTotal.WithLabelValues("hit").Inc()
			return hit, nil
		}
		metrics.PlacesCacheTotal.WithLabelValues("miss").Inc()
	}

	fresh, err := c.inner.NearbyRestaurants(ctx, center)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, fresh); err != nil {
			log.Printf("places cache write failed key=%s: %v", key, err)
		}
	}

	return fresh, nil
}
