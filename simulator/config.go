package main

import (
	"fmt"
	"time"
)

// Config holds parameters for the simulator.
type Config struct {
	Broker      string
	FleetSize   int
	CenterLat   float64
	CenterLon   float64
	SpreadKm    float64
	CapacityKg  float64
	Interval    time.Duration
	BusyRate    float64
	TopicPrefix string
}

// Validate checks the flag values.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.FleetSize <= 0 {
		return fmt.Errorf("fleet-size must be positive")
	}
	if c.CenterLat < -90 || c.CenterLat > 90 {
		return fmt.Errorf("center-lat out of range")
	}
	if c.CenterLon < -180 || c.CenterLon > 180 {
		return fmt.Errorf("center-lon out of range")
	}
	if c.BusyRate < 0 || c.BusyRate > 1 {
		return fmt.Errorf("busy-rate must be in [0,1]")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}
