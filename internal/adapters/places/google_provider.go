package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://maps.googleapis.com"
	DefaultRadiusMeters = 6047
	restaurantType      = "restaurant"
)

// GooglePlacesProvider implements PlacesProvider using the Places Nearby Search API.
// It also builds Street View image URLs for the detail popup.
//
// The provider is safe for concurrent use.
type GooglePlacesProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	radiusMeters int
	placeType    string
}

func NewGooglePlacesProvider(apiKey string, baseURL string, radiusMeters int) (*GooglePlacesProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google places api key is empty")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("google places base url %q: %w", baseURL, err)
	}

	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	return &GooglePlacesProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		radiusMeters: radiusMeters,
		placeType:    restaurantType,
	}, nil
}

// Look up restaurants within the configured radius of center.
func (g *GooglePlacesProvider) NearbyRestaurants(
	ctx context.Context,
	center domain.Coordinates,
) (_ []domain.Restaurant, err error) {
	defer obs.Time(ctx, "google.NearbyRestaurants")(&err)

	if !center.Valid() {
		return nil, fmt.Errorf("nearby restaurants: invalid center %s", center.LatLng())
	}

	decoded, err := g.nearbySearch(ctx, center)
	if err != nil {
		return nil, fmt.Errorf("nearby restaurants: %w", err)
	}

	return toRestaurants(decoded.Results), nil
}

// ImageURL returns a Street View static image for loc, sized for the popup.
func (g *GooglePlacesProvider) ImageURL(loc domain.Coordinates) string {
	q := url.Values{}
	q.Set("size", "160x80")
	q.Set("location", loc.LatLng())
	q.Set("fov", "80")
	q.Set("heading", "70")
	q.Set("pitch", "0")
	q.Set("key", g.apiKey)
	return g.baseURL + "/maps/api/streetview?" + q.Encode()
}

func (g *GooglePlacesProvider) radius() string { return strconv.Itoa(g.radiusMeters) }
