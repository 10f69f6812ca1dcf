package services

import (
	"errors"
	"restaurant-map-service/internal/domain"
	"testing"
)

func TestPlacementSubmitAddsRecordAtFront(t *testing.T) {
	store := NewRestaurantStore()
	store.ReplaceAll([]domain.Restaurant{{ID: "place:a", Name: "A", Rating: 4, Source: domain.SourceFetched}})
	p := NewPendingPlacement(store)

	if err := p.BeginAt(domain.Coordinates{Lat: 10, Lng: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State() != PlacementAwaitingForm {
		t.Fatalf("state = %s, want awaiting_form", p.State())
	}

	got, err := p.Submit(PlacementForm{Name: "Joe's", Rating: "4", Address: "Main St"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("store len = %d, want 2", len(all))
	}

	front := all[0]
	if front.ID != got.ID {
		t.Fatalf("front id = %q, want submitted %q", front.ID, got.ID)
	}
	if front.Name != "Joe's" || front.Rating != 4 || front.Address != "Main St" {
		t.Fatalf("front record = %+v", front)
	}
	if front.Location != (domain.Coordinates{Lat: 10, Lng: 20}) {
		t.Fatalf("location = %+v", front.Location)
	}
	if front.Source != domain.SourceUserAdded {
		t.Fatalf("source = %s, want user-added", front.Source)
	}

	if p.State() != PlacementIdle {
		t.Fatalf("state = %s after submit, want idle", p.State())
	}
	if _, ok := p.Coordinate(); ok {
		t.Fatal("coordinate should be cleared after submit")
	}
}

func TestPlacementRejectsBadRating(t *testing.T) {
	for _, rating := range []string{"abc", "", "5.5", "-1", "NaN"} {
		store := NewRestaurantStore()
		p := NewPendingPlacement(store)
		_ = p.BeginAt(domain.Coordinates{Lat: 1, Lng: 2})

		_, err := p.Submit(PlacementForm{Name: "X", Rating: rating, Address: "Y"})

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %q: expected ValidationError, got %v", rating, err)
		}
		if ve.Field != "rating" {
			t.Fatalf("rating %q: field = %q", rating, ve.Field)
		}
		if p.State() != PlacementAwaitingForm {
			t.Fatalf("rating %q: state = %s, form should stay open", rating, p.State())
		}
		if store.Len() != 0 {
			t.Fatalf("rating %q: record created on failed submit", rating)
		}
	}
}

func TestPlacementCancelAndIdleSubmit(t *testing.T) {
	store := NewRestaurantStore()
	p := NewPendingPlacement(store)

	if _, err := p.Submit(PlacementForm{Rating: "3"}); !errors.Is(err, ErrNoPendingPlacement) {
		t.Fatalf("submit while idle: got %v", err)
	}

	_ = p.BeginAt(domain.Coordinates{Lat: 1, Lng: 1})
	_ = p.BeginAt(domain.Coordinates{Lat: 2, Lng: 2})
	if c, _ := p.Coordinate(); c.Lat != 2 {
		t.Fatalf("second click should move pending coordinate, got %+v", c)
	}

	p.Cancel()
	if p.State() != PlacementIdle {
		t.Fatalf("state = %s after cancel", p.State())
	}
	if store.Len() != 0 {
		t.Fatal("cancel must not touch the store")
	}

	if err := p.BeginAt(domain.Coordinates{Lat: 95, Lng: 0}); err == nil {
		t.Fatal("expected error for out-of-range coordinate")
	}
	if p.State() != PlacementIdle {
		t.Fatal("invalid coordinate should not open the form")
	}
}
