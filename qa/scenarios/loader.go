// Package scenarios runs YAML-defined planning scenarios against the
// route planner. Scenarios double as regression fixtures: drop a new
// YAML file next to the loader and the test harness picks it up.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swiftroute/dispatch/core/model"
)

type VehicleDef struct {
	ID         string  `yaml:"id"`
	CapacityKg float64 `yaml:"capacity_kg"`
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	Status     string  `yaml:"status"`
}

func (v VehicleDef) ToModel() model.Vehicle {
	st := model.VehicleStatus(v.Status)
	if st == "" {
		st = model.VehicleAvailable
	}
	return model.Vehicle{
		ID:         v.ID,
		CapacityKg: v.CapacityKg,
		Location:   model.GeoPoint{Latitude: v.Latitude, Longitude: v.Longitude},
		Status:     st,
	}
}

type OrderDef struct {
	ID        string  `yaml:"id"`
	WeightKg  float64 `yaml:"weight_kg"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Priority  string  `yaml:"priority"`
}

func (o OrderDef) ToModel() model.DeliveryOrder {
	pr := model.Priority(o.Priority)
	if pr == "" {
		pr = model.PriorityMedium
	}
	return model.DeliveryOrder{
		ID:       o.ID,
		WeightKg: o.WeightKg,
		Location: model.GeoPoint{Latitude: o.Latitude, Longitude: o.Longitude},
		Priority: pr,
		Status:   model.OrderPending,
	}
}

type WeightDef struct {
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	Multiplier float64 `yaml:"multiplier"`
}

type Expected struct {
	// Routes maps vehicle IDs to the exact ordered list of order IDs.
	Routes map[string][]string `yaml:"routes"`
	// Unassigned lists order IDs no vehicle could take.
	Unassigned []string `yaml:"unassigned"`
}

type Scenario struct {
	Name     string       `yaml:"name"`
	Vehicles []VehicleDef `yaml:"vehicles"`
	Orders   []OrderDef   `yaml:"orders"`
	Weights  []WeightDef  `yaml:"weights"`
	Expected Expected     `yaml:"expected"`
}

// Load reads a scenario definition from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
