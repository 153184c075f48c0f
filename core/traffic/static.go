package traffic

import (
	"context"

	"github.com/swiftroute/dispatch/core/model"
)

// WeightEntry is one configured multiplier for a destination.
type WeightEntry struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Multiplier float64 `json:"multiplier"`
}

// Config defines the static provider's constants.
type Config struct {
	Level   float64       `json:"level"`
	Weather float64       `json:"weather"`
	Weights []WeightEntry `json:"weights"`
}

// Static serves fixed conditions and weights from configuration. It is a
// placeholder for a live traffic/weather feed and should be replaced in
// production deployments.
type Static struct {
	cond    Conditions
	weights Weights
}

// NewStatic builds a Static provider from configuration.
func NewStatic(cfg Config) *Static {
	w := make(Weights, len(cfg.Weights))
	for _, e := range cfg.Weights {
		w.Set(model.GeoPoint{Latitude: e.Latitude, Longitude: e.Longitude}, e.Multiplier)
	}
	return &Static{cond: Conditions{Level: cfg.Level, Weather: cfg.Weather}, weights: w}
}

// Conditions returns the configured constants.
func (s *Static) Conditions(ctx context.Context) (Conditions, error) {
	return s.cond, nil
}

// Weights returns a copy of the configured weight table so callers cannot
// mutate the provider's state.
func (s *Static) Weights(ctx context.Context) (Weights, error) {
	cp := make(Weights, len(s.weights))
	for k, v := range s.weights {
		cp[k] = v
	}
	return cp, nil
}
