package routing

import (
	"sort"

	"github.com/swiftroute/dispatch/core/geo"
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/traffic"
)

// NearestNeighbor is a capacity-constrained greedy planner. Vehicles are
// served in descending capacity order so high-capacity vehicles are not
// starved by a head-of-queue small one; each vehicle repeatedly takes the
// fitting order with the lowest traffic-adjusted distance from its current
// position. O(V*O^2) worst case, chosen for determinism and explainability
// over tour optimality.
type NearestNeighbor struct{}

// NewNearestNeighbor returns the default planner.
func NewNearestNeighbor() NearestNeighbor { return NearestNeighbor{} }

// Plan implements Planner.
func (NearestNeighbor) Plan(orders []model.DeliveryOrder, vehicles []model.Vehicle, weights traffic.Weights) Assignment {
	unassigned := append([]model.DeliveryOrder(nil), orders...)

	available := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Available() {
			available = append(available, v)
		}
	}
	// Stable sort keeps the input order for equal capacities, which keeps
	// repeated runs deterministic.
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].CapacityKg > available[j].CapacityKg
	})

	routes := make(map[string][]model.DeliveryOrder)
	for _, v := range available {
		current := v.Location
		remaining := v.CapacityKg
		var route []model.DeliveryOrder

		for len(unassigned) > 0 && remaining > 0 {
			best := -1
			bestDist := 0.0
			for i, o := range unassigned {
				if o.WeightKg > remaining {
					continue
				}
				d := geo.Distance(current, o.Location) * weights.Multiplier(o.Location)
				if best == -1 || d < bestDist {
					best = i
					bestDist = d
				}
			}
			if best == -1 {
				break
			}
			chosen := unassigned[best]
			route = append(route, chosen)
			remaining -= chosen.WeightKg
			current = chosen.Location
			unassigned = append(unassigned[:best], unassigned[best+1:]...)
		}

		if len(route) > 0 {
			routes[v.ID] = route
		}
	}

	return Assignment{Routes: routes, Unassigned: unassigned}
}
