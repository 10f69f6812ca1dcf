package main

import (
	"context"
	"flag"
	"log"
	"restaurant-map-service/internal/adapters/cache"
	"restaurant-map-service/internal/adapters/places"
	"restaurant-map-service/internal/config"
	"restaurant-map-service/internal/platform/db"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the optional backing services: the PostgreSQL places cache
// schema and the Elasticsearch restaurants index.
func main() {
	seedElastic := flag.Bool("seed-elastic", false, "index the fixture file into Elasticsearch")
	purge := flag.Bool("purge", false, "delete expired places cache rows")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if databaseURL := config.Get("DATABASE_URL", ""); strings.TrimSpace(databaseURL) != "" {
		initCache(ctx, databaseURL, *purge)
	} else {
		log.Println("DATABASE_URL not set, skipping places cache schema")
	}

	if *seedElastic {
		seed(ctx)
	}
}

func initCache(ctx context.Context, databaseURL string, purge bool) {
	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	log.Println("Initializing places cache schema...")
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !purge {
		return
	}

	ttl, err := time.ParseDuration(config.Get("PLACES_CACHE_TTL", config.DefaultCacheTTL.String()))
	if err != nil {
		log.Fatalf("PLACES_CACHE_TTL: %v", err)
	}
	n, err := cache.NewSQLPlacesCache(sqlDB, ttl).Purge(ctx)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}
	log.Printf("Purged %d expired cache rows.", n)
}

func seed(ctx context.Context) {
	elasticURL := config.Get("ELASTIC_URL", "")
	if strings.TrimSpace(elasticURL) == "" {
		log.Fatal("ELASTIC_URL is required for -seed-elastic")
	}

	fixture, err := places.LoadFixtureProvider(config.Get("FIXTURE_PATH", config.DefaultFixturePath), 0)
	if err != nil {
		log.Fatal(err)
	}

	es, err := places.NewElasticPlacesProvider(elasticURL, config.Get("ELASTIC_INDEX", places.DefaultElasticIndex), 0)
	if err != nil {
		log.Fatal(err)
	}
	defer es.Close()

	log.Println("Ensuring restaurants index...")
	if err := es.EnsureIndex(ctx); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	restaurants := fixture.Places()
	log.Printf("Indexing %d restaurants...", len(restaurants))
	if err := es.IndexRestaurants(ctx, restaurants); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
