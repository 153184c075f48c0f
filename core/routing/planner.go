package routing

import (
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/traffic"
)

// Assignment is the outcome of one planning pass. Routes maps vehicle IDs to
// their orders in visiting order; Unassigned holds every order no vehicle
// could take. A fresh Assignment is produced on every call and never reused.
type Assignment struct {
	Routes     map[string][]model.DeliveryOrder `json:"routes"`
	Unassigned []model.DeliveryOrder            `json:"unassigned"`
}

// AssignedCount returns the number of orders placed on a route.
func (a Assignment) AssignedCount() int {
	n := 0
	for _, r := range a.Routes {
		n += len(r)
	}
	return n
}

// Planner partitions open orders across available vehicles. Implementations
// must be deterministic for identical input and must not mutate their
// arguments, so concurrent calls with distinct inputs need no locking.
type Planner interface {
	Plan(orders []model.DeliveryOrder, vehicles []model.Vehicle, weights traffic.Weights) Assignment
}
