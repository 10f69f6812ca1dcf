package services

import (
	"restaurant-map-service/internal/domain"
	"strings"

	"github.com/google/uuid"
)

// RestaurantStore holds the working set of restaurant records in iteration order.
//
// It is not safe for concurrent use on its own; MapSession serializes access.
type RestaurantStore struct {
	records []domain.Restaurant
	newID   func() string
}

func NewRestaurantStore() *RestaurantStore {
	return &RestaurantStore{newID: func() string { return uuid.NewString() }}
}

// ReplaceAll discards the working set and installs records in their given order.
// Records without an id get one; later duplicates of an id are dropped so ids
// stay unique within the store.
func (s *RestaurantStore) ReplaceAll(records []domain.Restaurant) {
	next := make([]domain.Restaurant, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			r.ID = s.freshID(seen)
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}

		r.Rating = domain.ClampRating(r.Rating)
		next = append(next, r)
	}

	s.records = next
}

// InsertFront assigns a fresh id to record and prepends it, so new entries
// surface first in any listing. It returns the stored record.
func (s *RestaurantStore) InsertFront(record domain.Restaurant) domain.Restaurant {
	seen := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		seen[r.ID] = struct{}{}
	}

	record.ID = s.freshID(seen)
	record.Rating = domain.ClampRating(record.Rating)

	next := make([]domain.Restaurant, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)
	s.records = next

	return record
}

// All returns a snapshot of the working set in iteration order.
func (s *RestaurantStore) All() []domain.Restaurant {
	out := make([]domain.Restaurant, len(s.records))
	copy(out, s.records)
	return out
}

func (s *RestaurantStore) Find(id string) (domain.Restaurant, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Restaurant{}, false
}

func (s *RestaurantStore) Len() int { return len(s.records) }

func (s *RestaurantStore) freshID(taken map[string]struct{}) string {
	for {
		id := s.newID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
