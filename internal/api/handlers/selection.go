package handlers

import (
	"net/http"
	"restaurant-map-service/internal/api/dto"
	"strings"
)

// Selection serves the detail popup (GET), marker clicks (PUT) and popup
// close (DELETE).
func (h *MapHandler) Selection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		d, err := h.Session.Detail()
		if err != nil {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, dto.DetailResponse{
			Restaurant:    toRestaurant(d.Restaurant),
			StreetViewURL: d.StreetViewURL,
			Review:        d.Review,
		})
	case http.MethodPut:
		var req dto.SelectRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := strings.TrimSpace(req.ID)
		if id == "" {
			writeError(w, r, http.StatusBadRequest, "id is required")
			return
		}
		if !h.Session.Select(id) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		h.Session.ClearSelection()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
