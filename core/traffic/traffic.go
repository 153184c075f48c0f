// Package traffic models congestion input for route planning. Weights scale
// raw distances per destination; Conditions feed the duration estimator.
// Both are opaque inputs supplied by an external provider.
package traffic

import (
	"context"

	"github.com/swiftroute/dispatch/core/geo"
	"github.com/swiftroute/dispatch/core/model"
)

// Weights maps canonical point keys to distance multipliers. A multiplier of
// 2 makes a destination look twice as far to the planner.
type Weights map[geo.PointKey]float64

// Multiplier returns the weight for p, defaulting to 1 when no entry exists.
func (w Weights) Multiplier(p model.GeoPoint) float64 {
	if w == nil {
		return 1
	}
	if m, ok := w[geo.Key(p)]; ok {
		return m
	}
	return 1
}

// Set records the multiplier for p.
func (w Weights) Set(p model.GeoPoint, m float64) {
	w[geo.Key(p)] = m
}

// Conditions carries the normalized traffic and weather state used as
// estimator features. Both values are in [0,1].
type Conditions struct {
	Level   float64 `json:"level"`
	Weather float64 `json:"weather"`
}

// Provider supplies the current congestion picture. Implementations may
// query a live feed or return configured constants.
type Provider interface {
	Conditions(ctx context.Context) (Conditions, error)
	Weights(ctx context.Context) (Weights, error)
}
