package api

import (
	"net/http"
	"restaurant-map-service/internal/api/handlers"
	"restaurant-map-service/internal/platform/metrics"
	"restaurant-map-service/internal/services"
)

// NewRouter wires HTTP handlers to the map session and returns an http.Handler.
func NewRouter(session *services.MapSession) http.Handler {
	mux := http.NewServeMux()

	mapHandler := &handlers.MapHandler{Session: session}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/restaurants", mapHandler.Restaurants)
	mux.HandleFunc("/center", mapHandler.Center)
	mux.HandleFunc("/filter", mapHandler.Filter)
	mux.HandleFunc("/selection", mapHandler.Selection)
	mux.HandleFunc("/placement", mapHandler.Placement)
	mux.HandleFunc("/placement/submit", mapHandler.SubmitPlacement)
	mux.HandleFunc("/status", mapHandler.Status)
	mux.HandleFunc("/refresh", mapHandler.Refresh)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
