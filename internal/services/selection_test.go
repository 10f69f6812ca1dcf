package services

import (
	"restaurant-map-service/internal/domain"
	"testing"
)

func TestSelectionSelectAndReplace(t *testing.T) {
	store := NewRestaurantStore()
	store.ReplaceAll([]domain.Restaurant{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	c := NewSelectionController(store)

	if _, ok := c.Active(); ok {
		t.Fatal("nothing should be active initially")
	}

	if !c.Select("a") {
		t.Fatal("select a failed")
	}
	if !c.Select("b") {
		t.Fatal("select b failed")
	}

	r, ok := c.Active()
	if !ok || r.ID != "b" {
		t.Fatalf("active = %+v, %v; want b", r, ok)
	}

	if c.Select("missing") {
		t.Fatal("selecting an unknown id should fail")
	}
	if c.ActiveID() != "b" {
		t.Fatalf("unknown id changed selection to %q", c.ActiveID())
	}

	c.Clear()
	if _, ok := c.Active(); ok {
		t.Fatal("expected no selection after Clear")
	}
}

func TestSelectionStaleAfterReplace(t *testing.T) {
	store := NewRestaurantStore()
	store.ReplaceAll([]domain.Restaurant{{ID: "x"}, {ID: "y"}})
	c := NewSelectionController(store)
	c.Select("x")

	store.ReplaceAll([]domain.Restaurant{{ID: "x"}, {ID: "z"}})
	if r, ok := c.Active(); !ok || r.ID != "x" {
		t.Fatalf("retained id should stay active, got %+v %v", r, ok)
	}

	store.ReplaceAll([]domain.Restaurant{{ID: "z"}})
	if _, ok := c.Active(); ok {
		t.Fatal("stale id should resolve to none")
	}

	if !c.Prune() {
		t.Fatal("Prune should report the dropped selection")
	}
	if c.ActiveID() != "" {
		t.Fatalf("active id = %q after prune", c.ActiveID())
	}
}

func TestSelectionSeesInsertedRecord(t *testing.T) {
	store := NewRestaurantStore()
	c := NewSelectionController(store)

	r := store.InsertFront(domain.Restaurant{Name: "new"})
	if !c.Select(r.ID) {
		t.Fatal("record inserted after construction should be selectable")
	}
}
