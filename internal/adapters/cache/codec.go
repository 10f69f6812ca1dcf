package cache

import (
	"encoding/json"
	"fmt"
	"restaurant-map-service/internal/domain"
)

// cachedRestaurant is the stored form of a fetched record.
type cachedRestaurant struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func encodeRestaurants(rs []domain.Restaurant) (string, error) {
	rows := make([]cachedRestaurant, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, cachedRestaurant{
			ID:      r.ID,
			Name:    r.Name,
			Rating:  r.Rating,
			Address: r.Address,
			Lat:     r.Location.Lat,
			Lng:     r.Location.Lng,
		})
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode cached restaurants: %w", err)
	}
	return string(b), nil
}

// Cached entries only ever hold lookup results, so Source is always fetched.
func decodeRestaurants(payload string) ([]domain.Restaurant, error) {
	var rows []cachedRestaurant
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, fmt.Errorf("decode cached restaurants: %w", err)
	}

	out := make([]domain.Restaurant, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Restaurant{
			ID:       r.ID,
			Name:     r.Name,
			Rating:   domain.ClampRating(r.Rating),
			Address:  r.Address,
			Location: domain.Coordinates{Lat: r.Lat, Lng: r.Lng},
			Source:   domain.SourceFetched,
		})
	}
	return out, nil
}
