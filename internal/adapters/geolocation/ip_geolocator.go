package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/obs"
	"time"
)

// ipLocateResponse accepts both common field spellings of IP geolocation APIs.
type ipLocateResponse struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// IPGeolocator resolves the server's public position through an IP
// geolocation endpoint returning JSON coordinates.
type IPGeolocator struct {
	session *http.Client
	url     string
}

func NewIPGeolocator(url string) (*IPGeolocator, error) {
	if url == "" {
		return nil, errors.New("geolocation url is empty")
	}
	return &IPGeolocator{session: &http.Client{Timeout: 5 * time.Second}, url: url}, nil
}

func (g *IPGeolocator) CurrentPosition(ctx context.Context) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geolocation.CurrentPosition")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create geolocation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geolocation: unexpected status: %d", resp.StatusCode)
	}

	var decoded ipLocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geolocation response: %w", err)
	}

	lat, lng := decoded.Lat, decoded.Lon
	if lat == nil || lng == nil {
		lat, lng = decoded.Latitude, decoded.Longitude
	}
	if lat == nil || lng == nil {
		return domain.Coordinates{}, errors.New("geolocation: response has no coordinates")
	}

	c := domain.Coordinates{Lat: *lat, Lng: *lng}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("geolocation: coordinates out of range: %s", c.LatLng())
	}
	return c, nil
}
