package estimate

import (
	"context"
	"errors"
	"math"
)

// ErrNotInitialized is returned by Predict when the estimator is not ready,
// either because Initialize was never called or because Close was called.
var ErrNotInitialized = errors.New("estimate: model not initialized")

// Features is the six-dimensional context a duration prediction is based on.
// All fields except DistanceKm and WeightKg are normalized to [0,1].
type Features struct {
	DistanceKm   float64 `json:"distance_km"`
	WeightKg     float64 `json:"weight_kg"`
	TrafficLevel float64 `json:"traffic_level"`
	Weather      float64 `json:"weather"`
	TimeOfDay    float64 `json:"time_of_day"`
	Priority     float64 `json:"priority"`
}

// Validate checks all features are finite and within range.
func (f Features) Validate() error {
	vals := []float64{f.DistanceKm, f.WeightKg, f.TrafficLevel, f.Weather, f.TimeOfDay, f.Priority}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("estimate: feature must be finite")
		}
	}
	if f.DistanceKm < 0 || f.WeightKg < 0 {
		return errors.New("estimate: distance and weight must be non-negative")
	}
	for _, v := range []float64{f.TrafficLevel, f.Weather, f.TimeOfDay, f.Priority} {
		if v < 0 || v > 1 {
			return errors.New("estimate: normalized feature out of [0,1]")
		}
	}
	return nil
}

// Estimator predicts delivery durations from a feature vector. The scoring
// backend is a replaceable strategy; only the lifecycle below is contractual.
//
// Lifecycle: a fresh estimator starts uninitialized. Initialize prepares the
// model and may be slow, so it accepts a context and callers should wrap it
// with a timeout. Calling Initialize on a ready estimator rebuilds the model
// from scratch. Close releases the model and is terminal: after Close both
// Predict and Initialize return ErrNotInitialized.
//
// A single instance is not safe for concurrent use; callers serialize access
// or use one instance per worker.
type Estimator interface {
	Initialize(ctx context.Context) error
	Predict(f Features) (float64, error)
	Close() error
}

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateClosed
)
