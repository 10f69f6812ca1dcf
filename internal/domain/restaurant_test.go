package domain

import (
	"errors"
	"testing"
)

func TestClampRating(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{3.7, 3.7},
		{5, 5},
		{7.5, 5},
	}

	for _, c := range cases {
		if got := ClampRating(c.in); got != c.want {
			t.Errorf("ClampRating(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRatingRangeContains(t *testing.T) {
	rr := RatingRange{Low: 3, High: 4}

	for _, r := range []float64{3, 3.5, 4} {
		if !rr.Contains(r) {
			t.Errorf("range [3,4] should contain %v", r)
		}
	}
	for _, r := range []float64{0, 2.99, 4.01, 5} {
		if rr.Contains(r) {
			t.Errorf("range [3,4] should not contain %v", r)
		}
	}

	inverted := RatingRange{Low: 4, High: 3}
	if !inverted.Inverted() {
		t.Fatal("expected [4,3] to be inverted")
	}
	if inverted.Contains(3.5) {
		t.Fatal("inverted range should match nothing")
	}
}

func TestReviewLine(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{4.6, `"Food/service was great!"`},
		{4, `"Food/service was great!"`},
		{3.7, `"This place was pretty good"`},
		{3, `"We had an okay experience"`},
		{1.2, `"Did not have a great experience"`},
	}

	for _, c := range cases {
		got := Restaurant{Rating: c.rating}.ReviewLine()
		if got != c.want {
			t.Errorf("rating %v: review = %s, want %s", c.rating, got, c.want)
		}
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("33.45, -112.07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 33.45 || c.Lng != -112.07 {
		t.Fatalf("got %+v", c)
	}
	if c.LatLng() != "33.45,-112.07" {
		t.Fatalf("LatLng() = %q", c.LatLng())
	}

	for _, bad := range []string{"", "1", "a,b", "91,0", "0,181"} {
		if _, err := ParseCoordinates(bad); err == nil {
			t.Errorf("ParseCoordinates(%q) expected error", bad)
		}
	}
}

func TestLookupErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := error(&LookupError{Center: Coordinates{Lat: 1, Lng: 2}, Err: inner})

	if !errors.Is(err, inner) {
		t.Fatal("LookupError should unwrap to the provider error")
	}
	var le *LookupError
	if !errors.As(err, &le) || le.Center.Lat != 1 {
		t.Fatalf("errors.As failed: %v", err)
	}
}
