package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"restaurant-map-service/internal/domain"
	"strings"

	"github.com/google/uuid"
)

// nearbyResponse mirrors the Nearby Search fields the map needs.
type nearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Rating   *float64 `json:"rating,omitempty"`
	Vicinity string   `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// nearbySearch calls /maps/api/place/nearbysearch/json for center.
// Transient failures are retried via doWithRetry.
func (g *GooglePlacesProvider) nearbySearch(ctx context.Context, center domain.Coordinates) (*nearbyResponse, error) {
	endpoint := g.baseURL + "/maps/api/place/nearbysearch/json"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("location", center.LatLng())
		q.Set("radius", g.radius())
		q.Set("type", g.placeType)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute nearby search: %w", err)
	}
	defer resp.Body.Close()

	var decoded nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode nearby search response: %w", err)
	}

	switch decoded.Status {
	case "OK", "ZERO_RESULTS", "":
		return &decoded, nil
	default:
		msg := strings.TrimSpace(decoded.ErrorMessage)
		if msg == "" {
			return nil, fmt.Errorf("nearby search status %s", decoded.Status)
		}
		return nil, fmt.Errorf("nearby search status %s: %s", decoded.Status, msg)
	}
}

// toRestaurants maps place results to fetched records.
// Places without a rating are skipped since no rating range can show them.
func toRestaurants(results []placeResult) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, len(results))
	for _, p := range results {
		if p.Rating == nil {
			continue
		}

		id := uuid.NewString()
		if pid := strings.TrimSpace(p.PlaceID); pid != "" {
			id = "place:" + pid
		}

		out = append(out, domain.Restaurant{
			ID:      id,
			Name:    p.Name,
			Rating:  domain.ClampRating(*p.Rating),
			Address: p.Vicinity,
			Location: domain.Coordinates{
				Lat: p.Geometry.Location.Lat,
				Lng: p.Geometry.Location.Lng,
			},
			Source: domain.SourceFetched,
		})
	}
	return out
}
