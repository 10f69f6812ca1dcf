package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"restaurant-map-service/internal/api/dto"
	"restaurant-map-service/internal/domain"
	"restaurant-map-service/internal/services"
	"strings"
)

// Placement reads the add-restaurant workflow (GET), opens it at a clicked
// coordinate (POST) or cancels it (DELETE).
func (h *MapHandler) Placement(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, r, http.StatusOK, h.placementResponse())
	case http.MethodPost:
		var req dto.LocationJSON
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.Session.BeginPlacement(domain.Coordinates{Lat: req.Lat, Lng: req.Lng}); err != nil {
			writeValidation(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, h.placementResponse())
	case http.MethodDelete:
		h.Session.CancelPlacement()
		writeJSON(w, r, http.StatusOK, h.placementResponse())
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// SubmitPlacement adds the restaurant described by the form at the pending coordinate.
func (h *MapHandler) SubmitPlacement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.SubmitPlacementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.Session.SubmitPlacement(services.PlacementForm{
		Name:    req.Name,
		Rating:  ratingText(req.Rating),
		Address: req.Address,
	})
	if errors.Is(err, services.ErrNoPendingPlacement) {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeValidation(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toRestaurant(rec))
}

func (h *MapHandler) placementResponse() dto.PlacementResponse {
	snap := h.Session.Placement()
	res := dto.PlacementResponse{State: string(snap.State)}
	if snap.Coordinate != nil {
		loc := toLocation(*snap.Coordinate)
		res.Location = &loc
	}
	return res
}

// ratingText turns a JSON number or string into the raw form value.
func ratingText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
