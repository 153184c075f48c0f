package main

import "fmt"

// GenerateFleet creates FleetSize vehicles with IDs veh0001..vehNNNN.
func GenerateFleet(cfg Config) []SimulatedVehicle {
	if cfg.FleetSize <= 0 {
		return nil
	}
	vs := make([]SimulatedVehicle, cfg.FleetSize)
	for i := range vs {
		id := fmt.Sprintf("veh%04d", i+1)
		vs[i] = SimulatedVehicle{
			ID:          id,
			Name:        "Simulated " + id,
			Broker:      cfg.Broker,
			TopicPrefix: cfg.TopicPrefix,
			CapacityKg:  cfg.CapacityKg,
			CenterLat:   cfg.CenterLat,
			CenterLon:   cfg.CenterLon,
			SpreadKm:    cfg.SpreadKm,
			Interval:    cfg.Interval,
			BusyRate:    cfg.BusyRate,
		}
	}
	return vs
}
