package metrics

import "time"

// PlanEvent summarizes one route planning pass.
type PlanEvent struct {
	PlanID           string
	Time             time.Time
	Vehicles         int
	OrdersAssigned   int
	OrdersUnassigned int
	// RouteDistanceKm is the raw (unweighted) length of each vehicle's
	// route, keyed by vehicle ID.
	RouteDistanceKm map[string]float64
}

// EstimateEvent records one duration prediction stamped onto an order.
type EstimateEvent struct {
	PlanID    string
	OrderID   string
	VehicleID string
	Minutes   float64
	Time      time.Time
}

// Sink records planning events for observability purposes.
type Sink interface {
	RecordPlan(ev PlanEvent) error
}

// EstimateRecorder is implemented by sinks that track per-order estimates.
type EstimateRecorder interface {
	RecordEstimate(ev EstimateEvent) error
}

// FleetSizeRecorder is implemented by sinks that track the registry size.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 2112
	}
}
