package matching

import (
	"math"

	"recruit-backend/internal/profiles"
)

const earthRadiusKm = 6371.0

// distanceKm computes the great-circle distance between two coordinate pairs
// using the haversine formula.
func distanceKm(a, b profiles.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
