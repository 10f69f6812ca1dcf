package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/obs"
	"strings"

	"github.com/olivere/elastic/v7"
)

const DefaultElasticIndex = "restaurants"

const elasticMapping = `{
  "settings": {"number_of_shards": 1, "number_of_replicas": 0},
  "mappings": {
    "properties": {
      "place_id": {"type": "keyword"},
      "name":     {"type": "text"},
      "rating":   {"type": "float"},
      "vicinity": {"type": "text"},
      "location": {"type": "geo_point"}
    }
  }
}`

// elasticPlace is the document stored per restaurant.
type elasticPlace struct {
	PlaceID  string           `json:"place_id"`
	Name     string           `json:"name"`
	Rating   float64          `json:"rating"`
	Vicinity string           `json:"vicinity"`
	Location elastic.GeoPoint `json:"location"`
}

// ElasticPlacesProvider implements PlacesProvider over a self-hosted
// Elasticsearch index using a geo-distance filter.
type ElasticPlacesProvider struct {
	client       *elastic.Client
	index        string
	radiusMeters int
	size         int
}

// NewElasticPlacesProvider connects to url with sniffing disabled; extra
// client options are applied after the defaults.
func NewElasticPlacesProvider(url, index string, radiusMeters int, opts ...elastic.ClientOptionFunc) (*ElasticPlacesProvider, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("elastic url is empty")
	}

	options := append([]elastic.ClientOptionFunc{elastic.SetURL(url), elastic.SetSniff(false)}, opts...)
	client, err := elastic.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("create elastic client %q: %w", url, err)
	}

	if index == "" {
		index = DefaultElasticIndex
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	return &ElasticPlacesProvider{client: client, index: index, radiusMeters: radiusMeters, size: 60}, nil
}

func (e *ElasticPlacesProvider) Close() { e.client.Stop() }

// Return indexed restaurants within the radius of center, nearest first.
func (e *ElasticPlacesProvider) NearbyRestaurants(
	ctx context.Context,
	center domain.Coordinates,
) (_ []domain.Restaurant, err error) {
	defer obs.Time(ctx, "elastic.NearbyRestaurants")(&err)

	geo := elastic.NewGeoDistanceQuery("location").
		Lat(center.Lat).
		Lon(center.Lng).
		Distance(fmt.Sprintf("%dm", e.radiusMeters))

	res, err := e.client.Search().
		Index(e.index).
		Query(elastic.NewBoolQuery().Filter(geo)).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(center.Lat, center.Lng).
			Asc().
			Unit("m").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(e.size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("elastic nearby search: %w", err)
	}

	out := make([]domain.Restaurant, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc elasticPlace
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			log.Printf("elastic hit decode failed id=%s: %v", hit.Id, err)
			continue
		}

		id := "place:" + doc.PlaceID
		if doc.PlaceID == "" {
			id = "es:" + hit.Id
		}

		out = append(out, domain.Restaurant{
			ID:       id,
			Name:     doc.Name,
			Rating:   domain.ClampRating(doc.Rating),
			Address:  doc.Vicinity,
			Location: domain.Coordinates{Lat: doc.Location.Lat, Lng: doc.Location.Lon},
			Source:   domain.SourceFetched,
		})
	}

	return out, nil
}

// EnsureIndex creates the restaurants index with a geo_point mapping if missing.
func (e *ElasticPlacesProvider) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.IndexExists(e.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("ensure index %q: check exists: %w", e.index, err)
	}
	if exists {
		return nil
	}

	created, err := e.client.CreateIndex(e.index).BodyString(elasticMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("ensure index %q: create: %w", e.index, err)
	}
	if !created.Acknowledged {
		log.Printf("create index %s was not acknowledged", e.index)
	}
	return nil
}

// IndexRestaurants bulk-indexes restaurants, keyed by their place id.
func (e *ElasticPlacesProvider) IndexRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	bulk := e.client.Bulk()
	for _, r := range restaurants {
		placeID := strings.TrimPrefix(r.ID, "place:")
		doc := elasticPlace{
			PlaceID:  placeID,
			Name:     r.Name,
			Rating:   r.Rating,
			Vicinity: r.Address,
			Location: elastic.GeoPoint{Lat: r.Location.Lat, Lon: r.Location.Lng},
		}
		bulk = bulk.Add(elastic.NewBulkIndexRequest().Index(e.index).Id(placeID).Doc(doc))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return fmt.Errorf("index restaurants: bulk request: %w", err)
	}

	if failed := resp.Failed(); len(failed) > 0 {
		for _, item := range failed {
			if item.Error != nil {
				log.Printf("index restaurant failed id=%s: %s", item.Id, item.Error.Reason)
			}
		}
		return fmt.Errorf("index restaurants: %d of %d documents failed", len(failed), len(restaurants))
	}

	return nil
}
