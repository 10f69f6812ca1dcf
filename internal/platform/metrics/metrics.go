package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurantmap_lookups_total",
		Help: "Nearby-restaurant lookups by outcome",
	}, []string{"outcome"})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "restaurantmap_lookup_duration_ms",
		Help:    "Nearby-restaurant lookup duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	StaleLookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "restaurantmap_stale_lookups_total",
		Help: "Lookup completions dropped because a newer lookup was issued",
	})
	PlacesCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurantmap_places_cache_total",
		Help: "Places cache reads by result",
	}, []string{"result"})
	PlacesHTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurantmap_places_http_requests_total",
		Help: "Outbound places service requests by status class",
	}, []string{"status"})
	PlacementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurantmap_placements_total",
		Help: "Add-restaurant form outcomes",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(StaleLookupsTotal)
	prometheus.MustRegister(PlacesCacheTotal)
	prometheus.MustRegister(PlacesHTTPRequestsTotal)
	prometheus.MustRegister(PlacementsTotal)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
