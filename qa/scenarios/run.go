package scenarios

import (
	"sort"
	"testing"

	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/routing"
	"github.com/swiftroute/dispatch/core/traffic"
)

// RunScenario plans the scenario's orders and compares the assignment
// against the expected routes.
func RunScenario(t *testing.T, sc *Scenario) {
	vehicles := make([]model.Vehicle, len(sc.Vehicles))
	for i, v := range sc.Vehicles {
		vehicles[i] = v.ToModel()
	}
	orders := make([]model.DeliveryOrder, len(sc.Orders))
	for i, o := range sc.Orders {
		orders[i] = o.ToModel()
	}
	weights := make(traffic.Weights, len(sc.Weights))
	for _, w := range sc.Weights {
		weights.Set(model.GeoPoint{Latitude: w.Latitude, Longitude: w.Longitude}, w.Multiplier)
	}

	asn := routing.NewNearestNeighbor().Plan(orders, vehicles, weights)

	for vid, want := range sc.Expected.Routes {
		got := orderIDs(asn.Routes[vid])
		if !equalIDs(got, want) {
			t.Errorf("scenario %s vehicle %s: route %v, want %v", sc.Name, vid, got, want)
		}
	}
	for vid := range asn.Routes {
		if _, ok := sc.Expected.Routes[vid]; !ok {
			t.Errorf("scenario %s: unexpected route for %s", sc.Name, vid)
		}
	}

	gotUn := orderIDs(asn.Unassigned)
	wantUn := append([]string(nil), sc.Expected.Unassigned...)
	sort.Strings(gotUn)
	sort.Strings(wantUn)
	if !equalIDs(gotUn, wantUn) {
		t.Errorf("scenario %s: unassigned %v, want %v", sc.Name, gotUn, wantUn)
	}
}

func orderIDs(orders []model.DeliveryOrder) []string {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
