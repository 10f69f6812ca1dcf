package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisPlacesCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPlacesCache(client, ttl), mr
}

func TestRedisPlacesCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedisCache(t, time.Minute)

	if _, ok, err := c.Get(ctx, "nearby:k"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, "nearby:k", sampleRestaurants()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "nearby:k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "place:a" || got[1].Rating != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestRedisPlacesCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	if err := c.Put(ctx, "nearby:k", sampleRestaurants()); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("nearby:k"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, "nearby:k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisPlacesCacheCorruptPayload(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	mr.Set("nearby:bad", "not json")

	if _, _, err := c.Get(context.Background(), "nearby:bad"); err == nil {
		t.Fatal("expected decode error")
	}
}
