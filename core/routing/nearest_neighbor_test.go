package routing

import (
	"reflect"
	"testing"

	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/traffic"
)

func order(id string, weight, lat, lon float64) model.DeliveryOrder {
	return model.DeliveryOrder{
		ID:       id,
		WeightKg: weight,
		Location: model.GeoPoint{Latitude: lat, Longitude: lon},
		Priority: model.PriorityMedium,
		Status:   model.OrderPending,
	}
}

func vehicle(id string, capacity, lat, lon float64) model.Vehicle {
	return model.Vehicle{
		ID:         id,
		CapacityKg: capacity,
		Location:   model.GeoPoint{Latitude: lat, Longitude: lon},
		Status:     model.VehicleAvailable,
	}
}

func TestPlanLargestVehicleFirst(t *testing.T) {
	orders := []model.DeliveryOrder{order("o1", 50, 51.51, -0.1)}
	vehicles := []model.Vehicle{
		vehicle("small", 800, 51.505, -0.09),
		vehicle("big", 1000, 51.505, -0.09),
	}

	asn := NewNearestNeighbor().Plan(orders, vehicles, nil)
	route, ok := asn.Routes["big"]
	if !ok || len(route) != 1 || route[0].ID != "o1" {
		t.Fatalf("expected o1 on the 1000kg vehicle, got %+v", asn.Routes)
	}
	if _, ok := asn.Routes["small"]; ok {
		t.Error("smaller vehicle should have no route")
	}
	if len(asn.Unassigned) != 0 {
		t.Errorf("unexpected unassigned orders %v", asn.Unassigned)
	}
}

func TestPlanCapacityConstraint(t *testing.T) {
	orders := []model.DeliveryOrder{
		order("heavy", 8, 51.52, -0.12),
		order("light", 5, 51.52, -0.12),
	}
	vehicles := []model.Vehicle{vehicle("v1", 10, 51.505, -0.09)}

	asn := NewNearestNeighbor().Plan(orders, vehicles, nil)
	route := asn.Routes["v1"]
	if len(route) != 1 || route[0].ID != "heavy" {
		t.Fatalf("expected only the 8kg order assigned, got %+v", route)
	}
	if len(asn.Unassigned) != 1 || asn.Unassigned[0].ID != "light" {
		t.Fatalf("expected the 5kg order unassigned, got %+v", asn.Unassigned)
	}
}

func TestPlanRespectsCapacitySum(t *testing.T) {
	orders := []model.DeliveryOrder{
		order("a", 300, 51.51, -0.10),
		order("b", 400, 51.52, -0.11),
		order("c", 250, 51.53, -0.12),
		order("d", 500, 51.54, -0.13),
	}
	vehicles := []model.Vehicle{
		vehicle("v1", 700, 51.505, -0.09),
		vehicle("v2", 600, 51.50, -0.08),
	}

	asn := NewNearestNeighbor().Plan(orders, vehicles, nil)
	for id, route := range asn.Routes {
		var sum float64
		var cap float64
		for _, v := range vehicles {
			if v.ID == id {
				cap = v.CapacityKg
			}
		}
		for _, o := range route {
			sum += o.WeightKg
		}
		if sum > cap {
			t.Errorf("vehicle %s overloaded: %v > %v", id, sum, cap)
		}
	}
	if asn.AssignedCount()+len(asn.Unassigned) != len(orders) {
		t.Error("orders lost or duplicated")
	}
}

func TestPlanTrafficWeightChangesChoice(t *testing.T) {
	near := order("near", 10, 51.510, -0.10)
	far := order("far", 10, 51.530, -0.10)
	vehicles := []model.Vehicle{vehicle("v1", 15, 51.505, -0.09)}

	w := make(traffic.Weights)
	// Quadrupling the near order's distance makes the far one cheaper.
	w.Set(near.Location, 4)

	asn := NewNearestNeighbor().Plan([]model.DeliveryOrder{near, far}, vehicles, w)
	route := asn.Routes["v1"]
	if len(route) == 0 || route[0].ID != "far" {
		t.Fatalf("expected traffic-weighted planner to pick far first, got %+v", route)
	}
}

func TestPlanEmptyInputs(t *testing.T) {
	p := NewNearestNeighbor()

	asn := p.Plan(nil, []model.Vehicle{vehicle("v1", 100, 0, 0)}, nil)
	if len(asn.Routes) != 0 || len(asn.Unassigned) != 0 {
		t.Errorf("empty orders should yield empty result, got %+v", asn)
	}

	orders := []model.DeliveryOrder{order("o1", 5, 51.51, -0.1)}
	asn = p.Plan(orders, nil, nil)
	if len(asn.Routes) != 0 || len(asn.Unassigned) != 1 {
		t.Errorf("no vehicles should leave all orders unassigned, got %+v", asn)
	}

	busy := vehicle("v1", 100, 51.505, -0.09)
	busy.Status = model.VehicleBusy
	asn = p.Plan(orders, []model.Vehicle{busy}, nil)
	if len(asn.Routes) != 0 || len(asn.Unassigned) != 1 {
		t.Errorf("busy vehicles must not receive assignments, got %+v", asn)
	}
}

func TestPlanDeterministic(t *testing.T) {
	orders := []model.DeliveryOrder{
		order("a", 10, 51.51, -0.10),
		order("b", 10, 51.52, -0.11),
		order("c", 10, 51.53, -0.12),
	}
	vehicles := []model.Vehicle{
		vehicle("v1", 25, 51.505, -0.09),
		vehicle("v2", 25, 51.50, -0.08),
	}
	p := NewNearestNeighbor()
	first := p.Plan(orders, vehicles, nil)
	for i := 0; i < 10; i++ {
		if got := p.Plan(orders, vehicles, nil); !reflect.DeepEqual(first, got) {
			t.Fatalf("plan differs on run %d: %+v vs %+v", i, first, got)
		}
	}
}

func TestPlanDoesNotMutateInput(t *testing.T) {
	orders := []model.DeliveryOrder{
		order("a", 10, 51.51, -0.10),
		order("b", 10, 51.52, -0.11),
	}
	vehicles := []model.Vehicle{vehicle("v1", 25, 51.505, -0.09)}
	ordersCopy := append([]model.DeliveryOrder(nil), orders...)
	vehiclesCopy := append([]model.Vehicle(nil), vehicles...)

	NewNearestNeighbor().Plan(orders, vehicles, nil)

	if !reflect.DeepEqual(orders, ordersCopy) {
		t.Error("orders slice mutated")
	}
	if !reflect.DeepEqual(vehicles, vehiclesCopy) {
		t.Error("vehicles slice mutated")
	}
}

func TestPlanVisitsNearestFirst(t *testing.T) {
	orders := []model.DeliveryOrder{
		order("far", 10, 51.60, -0.10),
		order("near", 10, 51.51, -0.10),
	}
	vehicles := []model.Vehicle{vehicle("v1", 100, 51.505, -0.09)}

	asn := NewNearestNeighbor().Plan(orders, vehicles, nil)
	route := asn.Routes["v1"]
	if len(route) != 2 || route[0].ID != "near" || route[1].ID != "far" {
		t.Fatalf("expected near then far, got %+v", route)
	}
}
