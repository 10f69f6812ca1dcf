package services

import (
	"errors"
	"math"
	"restaurant-map-service/internal/domain"
	"strconv"
	"strings"
)

// ErrNoPendingPlacement is returned when a form is submitted without a captured coordinate.
var ErrNoPendingPlacement = errors.New("no pending placement")

type PlacementState string

const (
	PlacementIdle         PlacementState = "idle"
	PlacementAwaitingForm PlacementState = "awaiting_form"
)

// PlacementForm carries the raw add-restaurant form values.
// Rating is kept as text so malformed input can be rejected here.
type PlacementForm struct {
	Name    string
	Rating  string
	Address string
}

// PendingPlacement drives the "add a restaurant at this coordinate" workflow.
//
//	Idle --BeginAt--> AwaitingForm --Cancel/Submit--> Idle
//
// A failed Submit leaves the workflow in AwaitingForm.
type PendingPlacement struct {
	store *RestaurantStore
	state PlacementState
	coord domain.Coordinates
}

func NewPendingPlacement(store *RestaurantStore) *PendingPlacement {
	return &PendingPlacement{store: store, state: PlacementIdle}
}

func (p *PendingPlacement) State() PlacementState { return p.state }

// Coordinate returns the captured coordinate while the form is open.
func (p *PendingPlacement) Coordinate() (domain.Coordinates, bool) {
	if p.state != PlacementAwaitingForm {
		return domain.Coordinates{}, false
	}
	return p.coord, true
}

// BeginAt captures a clicked coordinate and opens the form. Clicking again
// while the form is open moves the pending coordinate.
func (p *PendingPlacement) BeginAt(coord domain.Coordinates) error {
	if !coord.Valid() {
		return &domain.ValidationError{Field: "location", Reason: "coordinates out of range"}
	}
	p.coord = coord
	p.state = PlacementAwaitingForm
	return nil
}

// Cancel discards the pending coordinate without touching the store.
func (p *PendingPlacement) Cancel() {
	p.coord = domain.Coordinates{}
	p.state = PlacementIdle
}

// Submit validates the form, inserts a user-added record at the front of the
// store and returns to Idle.
func (p *PendingPlacement) Submit(form PlacementForm) (domain.Restaurant, error) {
	if p.state != PlacementAwaitingForm {
		return domain.Restaurant{}, ErrNoPendingPlacement
	}

	rating, err := parseFormRating(form.Rating)
	if err != nil {
		return domain.Restaurant{}, err
	}

	stored := p.store.InsertFront(domain.Restaurant{
		Name:     strings.TrimSpace(form.Name),
		Rating:   rating,
		Address:  strings.TrimSpace(form.Address),
		Location: p.coord,
		Source:   domain.SourceUserAdded,
	})

	p.Cancel()
	return stored, nil
}

func parseFormRating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &domain.ValidationError{Field: "rating", Reason: "is required"}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.ValidationError{Field: "rating", Reason: "must be a number"}
	}

	if v < domain.MinRating || v > domain.MaxRating {
		return 0, &domain.ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}

	return v, nil
}
