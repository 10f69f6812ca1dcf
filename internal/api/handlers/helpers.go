package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"restaurant-map-service/internal/api/dto"
	"restaurant-map-service/internal/domain"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow ...string) {
	w.Header().Set("Allow", strings.Join(allow, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeBody decodes exactly one JSON object into v, rejecting unknown fields.
// It writes the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeValidation maps ValidationError to 422 and anything else to 500.
func writeValidation(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusUnprocessableEntity, ve.Error())
		return
	}
	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toLocation(c domain.Coordinates) dto.LocationJSON {
	return dto.LocationJSON{Lat: c.Lat, Lng: c.Lng}
}

func toRestaurant(r domain.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		ID:       r.ID,
		Name:     r.Name,
		Rating:   r.Rating,
		Address:  r.Address,
		Location: toLocation(r.Location),
		Source:   string(r.Source),
	}
}

func toFilter(rr domain.RatingRange) dto.FilterResponse {
	return dto.FilterResponse{Low: rr.Low, High: rr.High, Inverted: rr.Inverted()}
}
