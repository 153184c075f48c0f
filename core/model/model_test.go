package model

import (
	"errors"
	"testing"
)

func TestDeliveryOrderValidate(t *testing.T) {
	base := DeliveryOrder{
		ID:       "o1",
		Customer: "Alice",
		Location: GeoPoint{Latitude: 51.505, Longitude: -0.09},
		WeightKg: 12,
		Priority: PriorityMedium,
		Status:   OrderPending,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*DeliveryOrder)
		field  string
	}{
		{"empty id", func(o *DeliveryOrder) { o.ID = "" }, "id"},
		{"zero weight", func(o *DeliveryOrder) { o.WeightKg = 0 }, "weight_kg"},
		{"negative weight", func(o *DeliveryOrder) { o.WeightKg = -3 }, "weight_kg"},
		{"bad priority", func(o *DeliveryOrder) { o.Priority = "urgent" }, "priority"},
		{"latitude out of range", func(o *DeliveryOrder) { o.Location.Latitude = 91 }, "location.latitude"},
		{"longitude out of range", func(o *DeliveryOrder) { o.Location.Longitude = -181 }, "location.longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := base
			tc.mutate(&o)
			err := o.Validate()
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestVehicleValidate(t *testing.T) {
	v := Vehicle{ID: "v1", Name: "Van 1", CapacityKg: 800, Location: GeoPoint{Latitude: 48.85, Longitude: 2.35}, Status: VehicleAvailable}
	if err := v.Validate(); err != nil {
		t.Fatalf("valid vehicle rejected: %v", err)
	}
	v.CapacityKg = 0
	if err := v.Validate(); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestPriorityFeature(t *testing.T) {
	if PriorityLow.Feature() != 0 || PriorityMedium.Feature() != 0.5 || PriorityHigh.Feature() != 1 {
		t.Fatal("priority feature mapping changed")
	}
}
