package domain

// Inclusive rating bounds used as a visibility predicate.
// Low > High is representable and matches nothing.
type RatingRange struct {
	Low  float64
	High float64
}

// DefaultRatingRange covers every valid rating.
func DefaultRatingRange() RatingRange {
	return RatingRange{Low: MinRating, High: MaxRating}
}

func (rr RatingRange) Contains(rating float64) bool {
	return rr.Low <= rating && rating <= rr.High
}

func (rr RatingRange) Inverted() bool { return rr.Low > rr.High }
