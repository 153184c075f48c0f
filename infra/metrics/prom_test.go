package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/swiftroute/dispatch/core/metrics"
)

func TestPromSinkRecordsPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	ev := coremetrics.PlanEvent{
		PlanID:           "p1",
		Time:             time.Now(),
		Vehicles:         2,
		OrdersAssigned:   3,
		OrdersUnassigned: 1,
		RouteDistanceKm:  map[string]float64{"v1": 12.5, "v2": 4.2},
	}
	if err := sink.RecordPlan(ev); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if got := testutil.ToFloat64(sink.plans); got != 1 {
		t.Errorf("route_plans_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sink.assigned); got != 3 {
		t.Errorf("orders_assigned_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(sink.unassigned); got != 1 {
		t.Errorf("orders_unassigned_total = %v, want 1", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second register should reuse collectors: %v", err)
	}
}

func TestPromSinkFleetSize(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := sink.RecordFleetSize(7); err != nil {
		t.Fatalf("record fleet size: %v", err)
	}
	if got := testutil.ToFloat64(sink.fleet); got != 7 {
		t.Errorf("fleet_vehicles_total = %v, want 7", got)
	}
}
