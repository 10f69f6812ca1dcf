package ports

import "restaurant-map-service/internal/domain"

// Builds the static street-level image shown in the detail popup.
type StreetView interface {
	ImageURL(loc domain.Coordinates) string
}
