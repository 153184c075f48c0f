// Package events defines the planning related events emitted on the event bus.
//
// Available event types:
//   - PlanRequested: a planning pass was triggered
//   - PlanComputed: routes and estimates are ready
//   - VehicleObserved: the fleet registry absorbed a vehicle update
package events

import (
	"time"

	"github.com/swiftroute/dispatch/core/model"
)

// PlanRequested is published when a planning pass starts.
type PlanRequested struct {
	PlanID   string
	Orders   int
	Vehicles int
	Time     time.Time
}

// PlanComputed is published once routes and estimates are available.
type PlanComputed struct {
	PlanID     string
	Assigned   int
	Unassigned int
	Time       time.Time
}

// VehicleObserved is published when the fleet registry records an update.
type VehicleObserved struct {
	Vehicle model.Vehicle
	Time    time.Time
}
