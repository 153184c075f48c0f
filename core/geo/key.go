package geo

import (
	"math"

	"github.com/swiftroute/dispatch/core/model"
)

// keyScale fixes the key precision at one micro-degree, roughly 11 cm of
// latitude. Coordinates within the same micro-degree cell share a key.
const keyScale = 1e6

// PointKey is a canonical fixed-precision key for coordinate-indexed lookups.
// Using an integer pair instead of a formatted string avoids locale and
// float-printing pitfalls.
type PointKey struct {
	LatE6 int64
	LonE6 int64
}

// Key returns the PointKey for p.
func Key(p model.GeoPoint) PointKey {
	return PointKey{
		LatE6: int64(math.Round(p.Latitude * keyScale)),
		LonE6: int64(math.Round(p.Longitude * keyScale)),
	}
}
