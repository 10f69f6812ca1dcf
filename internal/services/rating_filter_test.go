package services

import (
	"errors"
	"math"
	"restaurant-map-service/internal/domain"
	"testing"
)

func TestRatingFilterScenario(t *testing.T) {
	a := domain.Restaurant{ID: "A", Rating: 4.5}
	b := domain.Restaurant{ID: "B", Rating: 3.0}
	records := []domain.Restaurant{a, b}

	f := NewRatingFilter()
	_ = f.SetLow(3)
	_ = f.SetHigh(5)
	equalIDs(t, f.VisibleOf(records), "A", "B")

	_ = f.SetLow(4)
	equalIDs(t, f.VisibleOf(records), "A")
}

func TestRatingFilterBoundsInclusive(t *testing.T) {
	f := NewRatingFilter()
	_ = f.SetLow(2)
	_ = f.SetHigh(4)

	var records []domain.Restaurant
	for r := 0.0; r <= 5.0; r += 0.5 {
		records = append(records, domain.Restaurant{ID: "r", Rating: r})
	}

	for _, r := range f.VisibleOf(records) {
		if r.Rating < 2 || r.Rating > 4 {
			t.Fatalf("rating %v outside [2,4] was visible", r.Rating)
		}
	}
	if n := len(f.VisibleOf(records)); n != 5 {
		t.Fatalf("visible count = %d, want 5 (2, 2.5, 3, 3.5, 4)", n)
	}
}

func TestRatingFilterClampsAndAllowsInversion(t *testing.T) {
	f := NewRatingFilter()

	_ = f.SetLow(-3)
	_ = f.SetHigh(12)
	if got := f.Range(); got != (domain.RatingRange{Low: 0, High: 5}) {
		t.Fatalf("range = %+v, want [0,5]", got)
	}

	_ = f.SetLow(4)
	_ = f.SetHigh(2)
	if got := f.Range(); got.Low != 4 || got.High != 2 {
		t.Fatalf("range = %+v, bounds should not auto-correct", got)
	}

	visible := f.VisibleOf([]domain.Restaurant{{ID: "x", Rating: 3}})
	if len(visible) != 0 {
		t.Fatalf("inverted range should show nothing, got %d", len(visible))
	}
}

func TestRatingFilterRejectsNaN(t *testing.T) {
	f := NewRatingFilter()

	err := f.SetLow(math.NaN())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if f.Range() != domain.DefaultRatingRange() {
		t.Fatalf("range changed after rejected input: %+v", f.Range())
	}
}
