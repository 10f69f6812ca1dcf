package dto

import (
	"encoding/json"
	"time"
)

type LocationJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RestaurantResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Rating   float64      `json:"rating"`
	Address  string       `json:"address"`
	Location LocationJSON `json:"location"`
	Source   string       `json:"source"`
}

type ListRestaurantsResponse struct {
	Center      LocationJSON         `json:"center"`
	Filter      FilterResponse       `json:"filter"`
	Restaurants []RestaurantResponse `json:"restaurants"`
}

type FilterRequest struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

type FilterResponse struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Inverted bool    `json:"inverted"`
}

type SelectRequest struct {
	ID string `json:"id"`
}

type DetailResponse struct {
	Restaurant    RestaurantResponse `json:"restaurant"`
	StreetViewURL string             `json:"street_view_url,omitempty"`
	Review        string             `json:"review"`
}

type PlacementResponse struct {
	State    string        `json:"state"`
	Location *LocationJSON `json:"location,omitempty"`
}

// SubmitPlacementRequest accepts the rating as a JSON number or string so
// malformed form input reaches validation instead of failing to decode.
type SubmitPlacementRequest struct {
	Name    string          `json:"name"`
	Rating  json.RawMessage `json:"rating"`
	Address string          `json:"address"`
}

type StatusResponse struct {
	IssuedGeneration  uint64     `json:"issued_generation"`
	AppliedGeneration uint64     `json:"applied_generation"`
	Pending           bool       `json:"pending"`
	StaleDropped      int        `json:"stale_dropped"`
	LastAppliedAt     *time.Time `json:"last_applied_at,omitempty"`
	LastError         string     `json:"last_error,omitempty"`
	LastErrorAt       *time.Time `json:"last_error_at,omitempty"`
}

type RefreshResponse struct {
	Generation uint64 `json:"generation"`
}
