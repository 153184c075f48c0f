package geo

import (
	"math"

	"github.com/swiftroute/dispatch/core/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula. It is symmetric and zero for identical points.
func Distance(a, b model.GeoPoint) float64 {
	dLat := rad(b.Latitude - a.Latitude)
	dLon := rad(b.Longitude - a.Longitude)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(rad(a.Latitude))*math.Cos(rad(b.Latitude))*sinLon*sinLon
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
