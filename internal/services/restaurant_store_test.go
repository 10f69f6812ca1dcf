package services

import (
	"fmt"
	"restaurant-map-service/internal/domain"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func ids(rs []domain.Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(t *testing.T, got []domain.Restaurant, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func TestStoreReplaceAll(t *testing.T) {
	s := NewRestaurantStore()
	s.newID = sequentialIDs()

	s.ReplaceAll([]domain.Restaurant{
		{ID: "place:a", Name: "A", Rating: 4.5},
		{ID: "", Name: "no id", Rating: 3},
		{ID: "place:a", Name: "A duplicate", Rating: 1},
		{ID: "place:b", Name: "B", Rating: 9},
	})

	equalIDs(t, s.All(), "place:a", "id-1", "place:b")

	b, ok := s.Find("place:b")
	if !ok {
		t.Fatal("expected place:b in store")
	}
	if b.Rating != 5 {
		t.Fatalf("rating = %v, want clamped 5", b.Rating)
	}

	s.ReplaceAll(nil)
	if s.Len() != 0 {
		t.Fatalf("len = %d after empty replace, want 0", s.Len())
	}
}

func TestStoreInsertFrontOrdering(t *testing.T) {
	s := NewRestaurantStore()
	s.newID = sequentialIDs()
	s.ReplaceAll([]domain.Restaurant{
		{ID: "place:a", Name: "A", Rating: 4},
		{ID: "place:b", Name: "B", Rating: 3},
	})

	first := s.InsertFront(domain.Restaurant{Name: "first", Rating: 2, Source: domain.SourceUserAdded})
	second := s.InsertFront(domain.Restaurant{ID: "ignored", Name: "second", Rating: 1, Source: domain.SourceUserAdded})

	if first.ID == second.ID {
		t.Fatalf("inserted records share id %q", first.ID)
	}
	if second.ID == "ignored" {
		t.Fatal("InsertFront must assign a fresh id")
	}

	equalIDs(t, s.All(), second.ID, first.ID, "place:a", "place:b")
}

func TestStoreInsertFrontSkipsTakenIDs(t *testing.T) {
	s := NewRestaurantStore()
	s.newID = sequentialIDs()
	s.ReplaceAll([]domain.Restaurant{{ID: "id-1", Name: "taken"}})

	r := s.InsertFront(domain.Restaurant{Name: "new"})
	if r.ID != "id-2" {
		t.Fatalf("id = %q, want id-2", r.ID)
	}
}

func TestStoreAllIsSnapshot(t *testing.T) {
	s := NewRestaurantStore()
	s.ReplaceAll([]domain.Restaurant{{ID: "x", Name: "X"}})

	snap := s.All()
	snap[0].Name = "mutated"

	if r, _ := s.Find("x"); r.Name != "X" {
		t.Fatalf("store changed through snapshot: %q", r.Name)
	}
}
