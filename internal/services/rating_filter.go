package services

import (
	"math"
	"restaurant-map-service/internal/domain"
)

// RatingFilter stores the [low, high] bounds that decide the visible subset.
//
// Each bound is clamped to the rating domain independently. Setting one bound
// past the other is allowed; the visible subset is then empty until corrected.
type RatingFilter struct {
	rng domain.RatingRange
}

func NewRatingFilter() *RatingFilter {
	return &RatingFilter{rng: domain.DefaultRatingRange()}
}

func (f *RatingFilter) SetLow(v float64) error {
	if math.IsNaN(v) {
		return &domain.ValidationError{Field: "low", Reason: "must be a number"}
	}
	f.rng.Low = domain.ClampRating(v)
	return nil
}

func (f *RatingFilter) SetHigh(v float64) error {
	if math.IsNaN(v) {
		return &domain.ValidationError{Field: "high", Reason: "must be a number"}
	}
	f.rng.High = domain.ClampRating(v)
	return nil
}

func (f *RatingFilter) Range() domain.RatingRange { return f.rng }

// VisibleOf returns the records whose rating lies within the bounds, in input order.
func (f *RatingFilter) VisibleOf(records []domain.Restaurant) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, len(records))
	for _, r := range records {
		if f.rng.Contains(r.Rating) {
			out = append(out, r)
		}
	}
	return out
}
