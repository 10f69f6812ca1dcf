package domain

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when no restaurant is active, including when the
// active id was dropped by a refresh of the working set.
var ErrNoSelection = errors.New("no restaurant selected")

// ValidationError reports malformed user input, such as a non-numeric rating.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LookupError wraps a failed nearby-restaurants lookup.
type LookupError struct {
	Center Coordinates
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup restaurants near %s: %v", e.Center.LatLng(), e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
