package services

import (
	"context"
	"errors"
	"log"
	"math"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/platform/metrics"
	"restaurant-map-service/internal/ports"
	"sync"
	"time"
)

// PopupDetail is what the map widget renders for the active restaurant.
type PopupDetail struct {
	Restaurant    domain.Restaurant
	StreetViewURL string
	Review        string
}

// LookupStatus lets the widget surface lookup failures instead of silently
// keeping the previous markers.
type LookupStatus struct {
	IssuedGeneration  uint64
	AppliedGeneration uint64
	FailedGeneration  uint64
	StaleDropped      int
	LastAppliedAt     time.Time
	LastError         string
	LastErrorAt       time.Time
}

// ListSnapshot is the marker list together with the center and filter it
// was computed from.
type ListSnapshot struct {
	Center      domain.Coordinates
	Filter      domain.RatingRange
	Restaurants []domain.Restaurant
}

// PlacementSnapshot is a read-only view of the add-restaurant workflow.
type PlacementSnapshot struct {
	State      PlacementState
	Coordinate *domain.Coordinates
}

type SessionOptions struct {
	Geolocator    ports.Geolocator
	StreetView    ports.StreetView
	LookupTimeout time.Duration
}

// MapSession owns the state behind one map view: the working set, the rating
// filter, the active selection, the pending placement and the map center.
//
// Every operation holds one mutex, so operations are atomic with respect to
// each other. Lookups run outside the lock and report back through
// applyLookup, where only the newest generation is applied.
type MapSession struct {
	mu sync.Mutex

	store     *RestaurantStore
	filter    *RatingFilter
	selection *SelectionController
	placement *PendingPlacement
	center    domain.Coordinates
	status    LookupStatus

	trigger    *LookupTrigger
	geolocator ports.Geolocator
	streetView ports.StreetView
}

func NewMapSession(provider ports.PlacesProvider, opts SessionOptions) *MapSession {
	store := NewRestaurantStore()
	s := &MapSession{
		store:      store,
		filter:     NewRatingFilter(),
		selection:  NewSelectionController(store),
		placement:  NewPendingPlacement(store),
		geolocator: opts.Geolocator,
		streetView: opts.StreetView,
	}
	s.trigger = NewLookupTrigger(provider, opts.LookupTimeout, s.applyLookup)
	return s
}

// Start centers the map on the user's position, if one is available, and
// issues the first lookup. A geolocation failure leaves the zero center.
func (s *MapSession) Start(ctx context.Context) {
	center := domain.Coordinates{}
	if s.geolocator != nil {
		pos, err := s.geolocator.CurrentPosition(ctx)
		if err != nil {
			log.Printf("geolocation unavailable, using default center: %v", err)
		} else {
			center = pos
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.center = center
	s.issueLookup()
}

func (s *MapSession) Center() domain.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center
}

// SetCenter moves the map center and refreshes the working set when it changed.
func (s *MapSession) SetCenter(c domain.Coordinates) error {
	if !c.Valid() {
		return &domain.ValidationError{Field: "center", Reason: "coordinates out of range"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c == s.center {
		return nil
	}
	s.center = c
	s.issueLookup()
	return nil
}

func (s *MapSession) Filter() domain.RatingRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Range()
}

func (s *MapSession) SetRatingLow(v float64) error {
	return s.SetRatingRange(&v, nil)
}

func (s *MapSession) SetRatingHigh(v float64) error {
	return s.SetRatingRange(nil, &v)
}

// SetRatingRange updates either or both bounds and issues a single lookup
// when the range changed.
func (s *MapSession) SetRatingRange(low, high *float64) error {
	if low != nil && math.IsNaN(*low) {
		return &domain.ValidationError{Field: "low", Reason: "must be a number"}
	}
	if high != nil && math.IsNaN(*high) {
		return &domain.ValidationError{Field: "high", Reason: "must be a number"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.filter.Range()
	if low != nil {
		if err := s.filter.SetLow(*low); err != nil {
			return err
		}
	}
	if high != nil {
		if err := s.filter.SetHigh(*high); err != nil {
			return err
		}
	}

	if s.filter.Range() != before {
		s.issueLookup()
	}
	return nil
}

// Restaurants returns the whole working set.
func (s *MapSession) Restaurants() []domain.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// Visible returns the working set filtered by the rating bounds.
func (s *MapSession) Visible() []domain.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.VisibleOf(s.store.All())
}

// List reads the center, the filter and either the visible subset or, with
// all set, the whole working set under one lock.
func (s *MapSession) List(all bool) ListSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.All()
	if !all {
		records = s.filter.VisibleOf(records)
	}
	return ListSnapshot{Center: s.center, Filter: s.filter.Range(), Restaurants: records}
}

// Select activates id; unknown ids leave the selection untouched.
func (s *MapSession) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Select(id)
}

func (s *MapSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

func (s *MapSession) Active() (domain.Restaurant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Active()
}

// Detail builds the popup content for the active restaurant.
func (s *MapSession) Detail() (PopupDetail, error) {
	r, ok := s.Active()
	if !ok {
		return PopupDetail{}, domain.ErrNoSelection
	}

	d := PopupDetail{Restaurant: r, Review: r.ReviewLine()}
	if s.streetView != nil {
		d.StreetViewURL = s.streetView.ImageURL(r.Location)
	}
	return d, nil
}

func (s *MapSession) BeginPlacement(c domain.Coordinates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placement.BeginAt(c)
}

func (s *MapSession) CancelPlacement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement.Cancel()
}

func (s *MapSession) SubmitPlacement(form PlacementForm) (domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.placement.Submit(form)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			metrics.PlacementsTotal.WithLabelValues("invalid").Inc()
		}
		return domain.Restaurant{}, err
	}

	metrics.PlacementsTotal.WithLabelValues("added").Inc()
	log.Printf("restaurant added id=%s name=%q rating=%.1f lat=%f lng=%f", r.ID, r.Name, r.Rating, r.Location.Lat, r.Location.Lng)
	return r, nil
}

func (s *MapSession) Placement() PlacementSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := PlacementSnapshot{State: s.placement.State()}
	if c, ok := s.placement.Coordinate(); ok {
		snap.Coordinate = &c
	}
	return snap
}

func (s *MapSession) LookupStatus() LookupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status
	st.IssuedGeneration = s.trigger.Generation()
	return st
}

// Pending reports whether the newest lookup has neither been applied nor failed.
func (st LookupStatus) Pending() bool {
	return st.IssuedGeneration > st.AppliedGeneration && st.IssuedGeneration > st.FailedGeneration
}

// Refresh re-issues a lookup for the current center and returns its generation.
func (s *MapSession) Refresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLookup()
}

// Wait blocks until in-flight lookups have been applied or dropped.
func (s *MapSession) Wait() { s.trigger.Wait() }

// Close cancels in-flight lookups. It must not be called with s.mu held.
func (s *MapSession) Close() { s.trigger.Close() }

// issueLookup must be called with s.mu held.
func (s *MapSession) issueLookup() uint64 {
	return s.trigger.Trigger(s.center, s.filter.Range())
}

func (s *MapSession) applyLookup(res LookupResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.trigger.IsCurrent(res.Generation) {
		s.status.StaleDropped++
		metrics.StaleLookupsTotal.Inc()
		log.Printf("lookup dropped gen=%d reason=stale", res.Generation)
		return
	}

	if res.Err != nil {
		s.status.FailedGeneration = res.Generation
		s.status.LastError = res.Err.Error()
		s.status.LastErrorAt = time.Now()
		log.Printf("lookup failed gen=%d err=%v", res.Generation, res.Err)
		return
	}

	s.store.ReplaceAll(res.Restaurants)
	if s.selection.Prune() {
		log.Printf("selection cleared gen=%d reason=not_in_working_set", res.Generation)
	}

	s.status.AppliedGeneration = res.Generation
	s.status.LastAppliedAt = time.Now()
	s.status.LastError = ""
	s.status.LastErrorAt = time.Time{}
	log.Printf("lookup applied gen=%d center=%s restaurants=%d", res.Generation, res.Center.LatLng(), s.store.Len())
}
