// Package fleet keeps the service's view of the vehicle fleet. The registry
// is fed by telemetry (MQTT or API) and read by the plan manager; it owns the
// busy/available transitions that follow a consumed plan.
package fleet

import (
	"sort"
	"sync"

	"github.com/swiftroute/dispatch/core/model"
)

// Filter narrows List results.
type Filter struct {
	Status model.VehicleStatus
}

// Store is an in-memory, concurrency-safe vehicle registry.
type Store struct {
	mu   sync.RWMutex
	data map[string]model.Vehicle
}

// NewStore creates an empty registry.
func NewStore() *Store {
	return &Store{data: map[string]model.Vehicle{}}
}

// Upsert inserts or replaces a vehicle.
func (s *Store) Upsert(v model.Vehicle) {
	s.mu.Lock()
	s.data[v.ID] = v
	s.mu.Unlock()
}

// UpdatePosition moves a known vehicle. Unknown IDs are ignored.
func (s *Store) UpdatePosition(id string, p model.GeoPoint) {
	s.mu.Lock()
	if v, ok := s.data[id]; ok {
		v.Location = p
		s.data[id] = v
	}
	s.mu.Unlock()
}

// SetStatus flips a known vehicle's status. Unknown IDs are ignored.
func (s *Store) SetStatus(id string, st model.VehicleStatus) {
	s.mu.Lock()
	if v, ok := s.data[id]; ok {
		v.Status = st
		s.data[id] = v
	}
	s.mu.Unlock()
}

// SetRoute records the order IDs assigned to a vehicle and marks it busy.
// Called by the plan consumer, not by the planner.
func (s *Store) SetRoute(id string, orderIDs []string) {
	s.mu.Lock()
	if v, ok := s.data[id]; ok {
		v.CurrentRoute = append([]string(nil), orderIDs...)
		v.Status = model.VehicleBusy
		s.data[id] = v
	}
	s.mu.Unlock()
}

// Get returns the vehicle with the given ID.
func (s *Store) Get(id string) (model.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	return v, ok
}

// List returns vehicles matching the filter, sorted by ID for stable output.
func (s *Store) List(f Filter) []model.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Vehicle, 0, len(s.data))
	for _, v := range s.data {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Snapshot returns every vehicle, sorted by ID.
func (s *Store) Snapshot() []model.Vehicle {
	return s.List(Filter{})
}

// Size returns the number of registered vehicles.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
