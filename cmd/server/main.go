package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"restaurant-map-service/internal/adapters/cache"
	"restaurant-map-service/internal/adapters/geolocation"
	"restaurant-map-service/internal/adapters/places"
	"restaurant-map-service/internal/api"
	"restaurant-map-service/internal/config"
	"restaurant-map-service/internal/platform/db"
	"restaurant-map-service/internal/ports"
	"restaurant-map-service/internal/services"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// purger is implemented by the SQL-backed places caches.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// main is the application composition root.
// It wires the places backend, the optional lookup cache and the geolocator
// behind ports, starts the map session and serves the widget API.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeProvider()

	placesCache, closeCache, err := buildCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	if placesCache != nil {
		provider = places.NewCachedProvider(provider, placesCache, fmt.Sprintf("nearby:%s:%d", cfg.PlacesBackend, cfg.RadiusMeters))
		if p, ok := placesCache.(purger); ok {
			go purgeLoop(ctx, p, cfg.CacheTTL)
		}
	}

	var streetView ports.StreetView
	if cfg.GoogleAPIKey != "" {
		sv, err := places.NewGooglePlacesProvider(cfg.GoogleAPIKey, cfg.PlacesBaseURL, cfg.RadiusMeters)
		if err != nil {
			log.Fatal(err)
		}
		streetView = sv
	}

	geolocator, err := buildGeolocator(cfg)
	if err != nil {
		log.Fatal(err)
	}

	session := services.NewMapSession(provider, services.SessionOptions{
		Geolocator:    geolocator,
		StreetView:    streetView,
		LookupTimeout: cfg.LookupTimeout,
	})
	session.Start(ctx)
	defer session.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(session),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s places_backend=%s cache_backend=%s", cfg.Port, cfg.PlacesBackend, cfg.CacheBackend)
		serveErr <- srv.ListenAndServe()
	}()

	// Shutdown returns once in-flight handlers are done, so no handler can
	// issue a lookup after the deferred session.Close runs.
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
		cancel()
	}
}

func buildProvider(cfg *config.Config) (ports.PlacesProvider, func(), error) {
	noop := func() {}

	switch cfg.PlacesBackend {
	case config.BackendGoogle:
		p, err := places.NewGooglePlacesProvider(cfg.GoogleAPIKey, cfg.PlacesBaseURL, cfg.RadiusMeters)
		if err != nil {
			return nil, noop, fmt.Errorf("build places provider: %w", err)
		}
		return p, noop, nil
	case config.BackendElastic:
		p, err := places.NewElasticPlacesProvider(cfg.ElasticURL, cfg.ElasticIndex, cfg.RadiusMeters)
		if err != nil {
			return nil, noop, fmt.Errorf("build places provider: %w", err)
		}
		return p, p.Close, nil
	case config.BackendFixture:
		p, err := places.LoadFixtureProvider(cfg.FixturePath, cfg.RadiusMeters)
		if err != nil {
			return nil, noop, fmt.Errorf("build places provider: %w", err)
		}
		return p, noop, nil
	default:
		return nil, noop, fmt.Errorf("build places provider: unknown backend %q", cfg.PlacesBackend)
	}
}

func buildCache(ctx context.Context, cfg *config.Config) (ports.PlacesCache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheSQLite:
		sqlDB, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		if err := initSchema(ctx, sqlDB); err != nil {
			return nil, noop, err
		}
		return cache.NewSqlitePlacesCache(sqlDB, cfg.CacheTTL), func() { sqlDB.Close() }, nil
	case config.CachePostgres:
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := initSchema(ctx, sqlDB); err != nil {
			return nil, noop, err
		}
		return cache.NewSQLPlacesCache(sqlDB, cfg.CacheTTL), func() { sqlDB.Close() }, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("build cache: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisPlacesCache(client, cfg.CacheTTL), func() { client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("build cache: unknown backend %q", cfg.CacheBackend)
	}
}

func initSchema(ctx context.Context, sqlDB *sql.DB) error {
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return fmt.Errorf("build cache: %w", err)
	}
	return nil
}

func buildGeolocator(cfg *config.Config) (ports.Geolocator, error) {
	if cfg.GeolocationURL != "" {
		g, err := geolocation.NewIPGeolocator(cfg.GeolocationURL)
		if err != nil {
			return nil, fmt.Errorf("build geolocator: %w", err)
		}
		return g, nil
	}
	return geolocation.NewStaticGeolocator(cfg.DefaultCenter), nil
}

// purgeLoop drops expired cache rows once per TTL.
func purgeLoop(ctx context.Context, p purger, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err != nil {
				log.Printf("places cache purge failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("places cache purged rows=%d", n)
			}
		}
	}
}
