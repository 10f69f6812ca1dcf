package domain

import "math"

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Source records how a restaurant entered the working set.
type Source string

const (
	SourceFetched   Source = "fetched"
	SourceUserAdded Source = "user-added"
)

// Represents a single place shown on the map.
// ID is assigned once when the record is created and never regenerated.
// Rating is kept within [MinRating, MaxRating].
type Restaurant struct {
	ID       string
	Name     string
	Rating   float64
	Address  string
	Location Coordinates
	Source   Source
}

// ClampRating bounds a rating to [MinRating, MaxRating].
func ClampRating(r float64) float64 {
	return math.Min(MaxRating, math.Max(MinRating, r))
}

// Canned review lines shown in the detail popup, best first.
var reviewLines = []string{
	`"Food/service was great!"`,
	`"This place was pretty good"`,
	`"We had an okay experience"`,
	`"Did not have a great experience"`,
}

// ReviewLine picks the popup review line for the restaurant's rating.
func (r Restaurant) ReviewLine() string {
	switch {
	case r.Rating >= 4:
		return reviewLines[0]
	case r.Rating >= 3.5:
		return reviewLines[1]
	case r.Rating >= 3:
		return reviewLines[2]
	default:
		return reviewLines[3]
	}
}
