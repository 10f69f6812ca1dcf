package places

import (
	"context"
	"fmt"
	"restaurant-map-service/internal/domain"
	"sync"
)

type MockResult struct {
	Center      domain.Coordinates
	Restaurants []domain.Restaurant
	Err         error
}

// MockPlacesProvider answers lookups from canned results keyed by center.
// Hold lets a test keep a lookup in flight until it is released.
type MockPlacesProvider struct {
	mu    sync.Mutex
	m     map[domain.Coordinates]MockResult
	holds map[domain.Coordinates]chan struct{}
	calls []domain.Coordinates
}

func NewMockPlacesProvider(results []MockResult) *MockPlacesProvider {
	m := make(map[domain.Coordinates]MockResult, len(results))
	for _, r := range results {
		m[r.Center] = r
	}
	return &MockPlacesProvider{m: m, holds: map[domain.Coordinates]chan struct{}{}}
}

// Hold blocks lookups for center until the returned release func is called.
func (p *MockPlacesProvider) Hold(center domain.Coordinates) (release func()) {
	ch := make(chan struct{})
	p.mu.Lock()
	p.holds[center] = ch
	p.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (p *MockPlacesProvider) Calls() []domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Coordinates, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *MockPlacesProvider) NearbyRestaurants(ctx context.Context, center domain.Coordinates) ([]domain.Restaurant, error) {
	p.mu.Lock()
	p.calls = append(p.calls, center)
	hold := p.holds[center]
	r, ok := p.m[center]
	p.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if !ok {
		return nil, fmt.Errorf("no canned result for %s", center.LatLng())
	}
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]domain.Restaurant, len(r.Restaurants))
	copy(out, r.Restaurants)
	return out, nil
}
