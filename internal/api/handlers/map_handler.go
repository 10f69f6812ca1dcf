package handlers

import (
	"net/http"
	"restaurant-map-service/internal/api/dto"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/services"
)

// MapHandler exposes the map session to the browser map widget.
type MapHandler struct {
	Session *services.MapSession
}

// Restaurants lists the visible subset, or the whole working set with ?all=true.
func (h *MapHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	snap := h.Session.List(r.URL.Query().Get("all") == "true")

	res := dto.ListRestaurantsResponse{
		Center:      toLocation(snap.Center),
		Filter:      toFilter(snap.Filter),
		Restaurants: make([]dto.RestaurantResponse, 0, len(snap.Restaurants)),
	}
	for _, rec := range snap.Restaurants {
		res.Restaurants = append(res.Restaurants, toRestaurant(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Center reads or moves the map center. Moving it triggers a new lookup.
func (h *MapHandler) Center(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, r, http.StatusOK, toLocation(h.Session.Center()))
	case http.MethodPut:
		var req dto.LocationJSON
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.Session.SetCenter(domain.Coordinates{Lat: req.Lat, Lng: req.Lng}); err != nil {
			writeValidation(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toLocation(h.Session.Center()))
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

// Filter reads or updates the rating bounds; omitted bounds are unchanged.
func (h *MapHandler) Filter(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, r, http.StatusOK, toFilter(h.Session.Filter()))
	case http.MethodPut:
		var req dto.FilterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Low == nil && req.High == nil {
			writeError(w, r, http.StatusBadRequest, "low or high is required")
			return
		}
		if err := h.Session.SetRatingRange(req.Low, req.High); err != nil {
			writeValidation(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toFilter(h.Session.Filter()))
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

// Status reports lookup progress and the last lookup failure, if any.
func (h *MapHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	st := h.Session.LookupStatus()
	res := dto.StatusResponse{
		IssuedGeneration:  st.IssuedGeneration,
		AppliedGeneration: st.AppliedGeneration,
		Pending:           st.Pending(),
		StaleDropped:      st.StaleDropped,
		LastError:         st.LastError,
	}
	if !st.LastAppliedAt.IsZero() {
		t := st.LastAppliedAt
		res.LastAppliedAt = &t
	}
	if !st.LastErrorAt.IsZero() {
		t := st.LastErrorAt
		res.LastErrorAt = &t
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Refresh re-runs the lookup for the current center.
func (h *MapHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	gen := h.Session.Refresh()
	writeJSON(w, r, http.StatusAccepted, dto.RefreshResponse{Generation: gen})
}
