package services

import (
	"context"
	"fmt"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/metrics"
	"restaurant-map-service/internal/platform/obs"
	"restaurant-map-service/internal/ports"
	"sync"
	"time"
)

// LookupResult is delivered to the sink when a lookup finishes.
type LookupResult struct {
	Generation  uint64
	Center      domain.Coordinates
	Restaurants []domain.Restaurant
	Err         error
}

// LookupTrigger issues one nearby-restaurants lookup per change of the map
// center or rating bounds. Every lookup is tagged with an increasing
// generation; the sink decides whether a completion is still current via
// IsCurrent.
type LookupTrigger struct {
	provider ports.PlacesProvider
	timeout  time.Duration
	sink     func(LookupResult)

	mu     sync.Mutex
	gen    uint64
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLookupTrigger(provider ports.PlacesProvider, timeout time.Duration, sink func(LookupResult)) *LookupTrigger {
	ctx, cancel := context.WithCancel(context.Background())
	return &LookupTrigger{
		provider: provider,
		timeout:  timeout,
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Trigger starts a lookup for center and returns its generation.
// The rating range is part of the trigger condition only; filtering happens
// on the working set. After Close it starts nothing and returns the last
// issued generation.
func (t *LookupTrigger) Trigger(center domain.Coordinates, _ domain.RatingRange) uint64 {
	t.mu.Lock()
	if t.closed {
		gen := t.gen
		t.mu.Unlock()
		return gen
	}
	t.gen++
	gen := t.gen
	parent := t.ctx
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()

		ctx := obs.WithRequestID(parent, fmt.Sprintf("lookup-%d", gen))
		if t.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.timeout)
			defer cancel()
		}

		start := time.Now()
		rs, err := t.provider.NearbyRestaurants(ctx, center)
		metrics.LookupDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.LookupsTotal.WithLabelValues("error").Inc()
			err = &domain.LookupError{Center: center, Err: err}
		} else {
			metrics.LookupsTotal.WithLabelValues("ok").Inc()
		}

		t.sink(LookupResult{Generation: gen, Center: center, Restaurants: rs, Err: err})
	}()

	return gen
}

// IsCurrent reports whether gen is the most recently issued lookup.
func (t *LookupTrigger) IsCurrent(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}

func (t *LookupTrigger) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Wait blocks until every in-flight lookup has reached the sink.
func (t *LookupTrigger) Wait() { t.wg.Wait() }

// Close cancels in-flight lookups and waits for them to finish.
// Later calls to Trigger are no-ops.
func (t *LookupTrigger) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
}
