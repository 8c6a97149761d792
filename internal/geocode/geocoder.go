package geocode

import (
	"context"
	"errors"
)

// ErrNoResult indicates the geocoder found no coordinates for a location.
var ErrNoResult = errors.New("no geocoding result")

// Point is a resolved latitude/longitude pair.
type Point struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text location into coordinates. Implementations
// are external capabilities; callers must treat any error as "no coordinates"
// and fall back to neutral scoring rather than failing.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (Point, error)
}
