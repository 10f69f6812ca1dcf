package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"restaurant-map-service/internal/domain"
	"strings"
	"sync/atomic"
	"testing"
)

const nearbyOK = `{
  "status": "OK",
  "results": [
    {"place_id": "abc", "name": "Taco Spot", "rating": 4.6, "vicinity": "1 Main St",
     "geometry": {"location": {"lat": 33.45, "lng": -112.07}}},
    {"place_id": "nope", "name": "Unrated", "vicinity": "2 Main St",
     "geometry": {"location": {"lat": 33.46, "lng": -112.08}}},
    {"place_id": "def", "name": "Pho House", "rating": 3.2, "vicinity": "3 Main St",
     "geometry": {"location": {"lat": 33.44, "lng": -112.06}}}
  ]
}`

func newTestGoogle(t *testing.T, h http.HandlerFunc) *GooglePlacesProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewGooglePlacesProvider("test-key", srv.URL, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestGoogleNearbyRestaurants(t *testing.T) {
	var query url.Values
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/place/nearbysearch/json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		query = r.URL.Query()
		w.Write([]byte(nearbyOK))
	})

	got, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 33.4484, Lng: -112.074})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query.Get("location") != "33.4484,-112.074" {
		t.Errorf("location = %q", query.Get("location"))
	}
	if query.Get("radius") != "1500" || query.Get("type") != "restaurant" || query.Get("key") != "test-key" {
		t.Errorf("query = %v", query)
	}

	if len(got) != 2 {
		t.Fatalf("got %d restaurants, want 2 (unrated skipped)", len(got))
	}
	first := got[0]
	if first.ID != "place:abc" || first.Name != "Taco Spot" || first.Rating != 4.6 || first.Address != "1 Main St" {
		t.Errorf("first = %+v", first)
	}
	if first.Location != (domain.Coordinates{Lat: 33.45, Lng: -112.07}) {
		t.Errorf("location = %+v", first.Location)
	}
	if first.Source != domain.SourceFetched {
		t.Errorf("source = %s", first.Source)
	}
}

func TestGoogleZeroResults(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	got, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d restaurants", len(got))
	}
}

func TestGoogleErrorStatus(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	})

	_, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 1, Lng: 1})
	if err == nil || !strings.Contains(err.Error(), "REQUEST_DENIED") {
		t.Fatalf("err = %v", err)
	}
}

func TestGoogleRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(nearbyOK))
	})

	got, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 || len(got) != 2 {
		t.Fatalf("calls = %d, restaurants = %d", calls.Load(), len(got))
	}
}

func TestGoogleDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 1, Lng: 1})

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestGoogleRejectsInvalidCenter(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	if _, err := g.NearbyRestaurants(context.Background(), domain.Coordinates{Lat: 100}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGoogleImageURL(t *testing.T) {
	g, err := NewGooglePlacesProvider("k", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	raw := g.ImageURL(domain.Coordinates{Lat: 10, Lng: 20})
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "maps.googleapis.com" || u.Path != "/maps/api/streetview" {
		t.Errorf("url = %s", raw)
	}
	q := u.Query()
	if q.Get("size") != "160x80" || q.Get("location") != "10,20" || q.Get("key") != "k" {
		t.Errorf("query = %v", q)
	}
}

func TestNewGooglePlacesProviderRequiresKey(t *testing.T) {
	if _, err := NewGooglePlacesProvider("  ", "", 0); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
