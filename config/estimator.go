package config

import (
	"fmt"

	"github.com/swiftroute/dispatch/core/estimate"
)

// EstimatorConfig selects and tunes the duration estimator backend.
type EstimatorConfig struct {
	// Backend selects the estimator type: "regression" or "heuristic".
	Backend    string                    `json:"backend"`
	Regression estimate.RegressionConfig `json:"regression"`
}

// SetDefaults applies sane defaults.
func (c *EstimatorConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "regression"
	}
	c.Regression.SetDefaults()
}

// Validate checks mandatory fields.
func (c EstimatorConfig) Validate() error {
	if c.Backend != "regression" && c.Backend != "heuristic" {
		return fmt.Errorf("unknown estimator backend %s", c.Backend)
	}
	return nil
}

// Build constructs the configured estimator.
func (c EstimatorConfig) Build() estimate.Estimator {
	if c.Backend == "heuristic" {
		return estimate.NewHeuristic()
	}
	return estimate.NewRegression(c.Regression)
}
