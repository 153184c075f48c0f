package logging

import (
	"context"
	"sort"
	"time"
)

// PlanRecord captures one planning decision for auditing.
type PlanRecord struct {
	Timestamp  time.Time           `json:"timestamp"`
	PlanID     string              `json:"plan_id"`
	Routes     map[string][]string `json:"routes"`
	Unassigned []string            `json:"unassigned"`
	Estimates  map[string]float64  `json:"estimates"`
	DistanceKm map[string]float64  `json:"distance_km"`
}

// VehicleIDs returns the vehicles that received a route, sorted by ID.
func (r PlanRecord) VehicleIDs() []string {
	ids := make([]string, 0, len(r.Routes))
	for id := range r.Routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Query defines filters for retrieving records.
type Query struct {
	Start     time.Time
	End       time.Time
	VehicleID string
	OrderID   string
}

func (q Query) matches(r PlanRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.VehicleID != "" {
		if _, ok := r.Routes[q.VehicleID]; !ok {
			return false
		}
	}
	if q.OrderID != "" && !recordHasOrder(r, q.OrderID) {
		return false
	}
	return true
}

func recordHasOrder(r PlanRecord, orderID string) bool {
	for _, route := range r.Routes {
		for _, id := range route {
			if id == orderID {
				return true
			}
		}
	}
	for _, id := range r.Unassigned {
		if id == orderID {
			return true
		}
	}
	return false
}

// LogStore persists PlanRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec PlanRecord) error
	Query(ctx context.Context, q Query) ([]PlanRecord, error)
	Close() error
}
