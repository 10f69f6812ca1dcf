package cache

import (
	"context"
	"errors"
	"fmt"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPlacesCache stores nearby-search results with a Redis TTL.
type RedisPlacesCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlacesCache(client *redis.Client, ttl time.Duration) *RedisPlacesCache {
	return &RedisPlacesCache{Client: client, TTL: ttl}
}

func (r *RedisPlacesCache) Get(
	ctx context.Context,
	key string,
) (_ []domain.Restaurant, _ bool, err error) {
	defer obs.Time(ctx, "places.cache.redis.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("places cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get places cache: key must not be empty")
	}

	payload, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get places cache key=%q: %w", key, err)
	}

	rs, err := decodeRestaurants(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get places cache key=%q: %w", key, err)
	}
	return rs, true, nil
}

func (r *RedisPlacesCache) Put(ctx context.Context, key string, restaurants []domain.Restaurant) error {
	if r.Client == nil {
		return errors.New("places cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert places cache: key must not be empty")
	}

	payload, err := encodeRestaurants(restaurants)
	if err != nil {
		return fmt.Errorf("insert places cache: %w", err)
	}

	if err := r.Client.Set(ctx, key, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert places cache key=%q: %w", key, err)
	}
	return nil
}
