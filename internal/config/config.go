// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"restaurant-map-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendGoogle  = "google"
	BackendElastic = "elastic"
	BackendFixture = "fixture"

	CacheNone     = "none"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Default values for non-secret configuration.
const (
	DefaultPort          = "8080"
	DefaultRadiusMeters  = 6047
	DefaultCacheTTL      = 10 * time.Minute
	DefaultLookupTimeout = 15 * time.Second
	DefaultDBPath        = "data/places_cache.db"
	DefaultRedisAddr     = "127.0.0.1:6379"
	DefaultFixturePath   = "data/fixtures/nearby.json"
)

type Config struct {
	Port string `koanf:"port"`

	PlacesBackend string `koanf:"places_backend"`
	GoogleAPIKey  string `koanf:"google_api_key"`
	PlacesBaseURL string `koanf:"places_base_url"`
	RadiusMeters  int    `koanf:"places_radius_meters"`
	FixturePath   string `koanf:"fixture_path"`
	ElasticURL    string `koanf:"elastic_url"`
	ElasticIndex  string `koanf:"elastic_index"`

	CacheBackend  string        `koanf:"cache_backend"`
	DBPath        string        `koanf:"db_path"`
	DatabaseURL   string        `koanf:"database_url"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	CacheTTL      time.Duration `koanf:"places_cache_ttl"`

	LookupTimeout  time.Duration       `koanf:"lookup_timeout"`
	DefaultCenter  *domain.Coordinates `koanf:"-"`
	GeolocationURL string              `koanf:"geolocation_url"`
}

var (
	ErrMissingGoogleAPIKey = errors.New("GOOGLE_API_KEY is required for the google places backend")
	ErrMissingElasticURL   = errors.New("ELASTIC_URL is required for the elastic places backend")
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required for the postgres cache backend")
)

// Load reads .env (if present), then configFilePath, then the environment.
// An empty configFilePath falls back to CONFIG_FILE, which may itself come
// from .env. It returns every validation problem joined into one error.
func Load(configFilePath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if configFilePath == "" {
		configFilePath = Get("CONFIG_FILE", "")
	}

	k := koanf.New(".")
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFilePath, err)
		}
	}

	var errs []error

	radius, err := intSetting("PLACES_RADIUS_METERS", k, "places_radius_meters", DefaultRadiusMeters)
	errs = appendErr(errs, err)
	redisDB, err := intSetting("REDIS_DB", k, "redis_db", 0)
	errs = appendErr(errs, err)
	cacheTTL, err := durationSetting("PLACES_CACHE_TTL", k, "places_cache_ttl", DefaultCacheTTL)
	errs = appendErr(errs, err)
	lookupTimeout, err := durationSetting("LOOKUP_TIMEOUT", k, "lookup_timeout", DefaultLookupTimeout)
	errs = appendErr(errs, err)

	cfg := &Config{
		Port:           stringSetting("PORT", k, "port", DefaultPort),
		PlacesBackend:  strings.ToLower(stringSetting("PLACES_BACKEND", k, "places_backend", BackendGoogle)),
		GoogleAPIKey:   stringSetting("GOOGLE_API_KEY", k, "google_api_key", ""),
		PlacesBaseURL:  stringSetting("PLACES_BASE_URL", k, "places_base_url", ""),
		RadiusMeters:   radius,
		FixturePath:    stringSetting("FIXTURE_PATH", k, "fixture_path", DefaultFixturePath),
		ElasticURL:     stringSetting("ELASTIC_URL", k, "elastic_url", ""),
		ElasticIndex:   stringSetting("ELASTIC_INDEX", k, "elastic_index", "restaurants"),
		CacheBackend:   strings.ToLower(stringSetting("CACHE_BACKEND", k, "cache_backend", CacheNone)),
		DBPath:         stringSetting("DB_PATH", k, "db_path", DefaultDBPath),
		DatabaseURL:    stringSetting("DATABASE_URL", k, "database_url", ""),
		RedisAddr:      stringSetting("REDIS_ADDR", k, "redis_addr", DefaultRedisAddr),
		RedisPassword:  stringSetting("REDIS_PASSWORD", k, "redis_password", ""),
		RedisDB:        redisDB,
		CacheTTL:       cacheTTL,
		LookupTimeout:  lookupTimeout,
		GeolocationURL: stringSetting("GEOLOCATION_URL", k, "geolocation_url", ""),
	}

	if raw := stringSetting("DEFAULT_CENTER", k, "default_center", ""); raw != "" {
		c, err := domain.ParseCoordinates(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEFAULT_CENTER: %w", err))
		} else {
			cfg.DefaultCenter = &c
		}
	}

	errs = append(errs, cfg.Validate()...)
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks backend selections and their required settings.
func (c *Config) Validate() []error {
	var errs []error

	switch c.PlacesBackend {
	case BackendGoogle:
		if strings.TrimSpace(c.GoogleAPIKey) == "" {
			errs = append(errs, ErrMissingGoogleAPIKey)
		}
	case BackendElastic:
		if strings.TrimSpace(c.ElasticURL) == "" {
			errs = append(errs, ErrMissingElasticURL)
		}
	case BackendFixture:
	default:
		errs = append(errs, fmt.Errorf("PLACES_BACKEND must be one of google, elastic, fixture; got %q", c.PlacesBackend))
	}

	switch c.CacheBackend {
	case CacheNone, CacheSQLite, CacheRedis:
	case CachePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be one of none, sqlite, postgres, redis; got %q", c.CacheBackend))
	}

	if c.RadiusMeters <= 0 || c.RadiusMeters > 50000 {
		errs = append(errs, fmt.Errorf("PLACES_RADIUS_METERS must be between 1 and 50000; got %d", c.RadiusMeters))
	}

	return errs
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func stringSetting(envKey string, k *koanf.Koanf, koanfKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := k.String(koanfKey); v != "" {
		return v
	}
	return fallback
}

func intSetting(envKey string, k *koanf.Koanf, koanfKey string, fallback int) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fallback, fmt.Errorf("%s must be a valid integer: %w", envKey, err)
		}
		return i, nil
	}
	if k.Exists(koanfKey) {
		return k.Int(koanfKey), nil
	}
	return fallback, nil
}

func durationSetting(envKey string, k *koanf.Koanf, koanfKey string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(envKey)
	if raw == "" {
		raw = k.String(koanfKey)
	}
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a duration like 10m: %w", envKey, err)
	}
	return d, nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
