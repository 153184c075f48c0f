package model

// VehicleStatus reports whether a vehicle can take new assignments.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "available"
	VehicleBusy      VehicleStatus = "busy"
)

// Vehicle represents a delivery vehicle in the fleet.
type Vehicle struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CapacityKg float64       `json:"capacity_kg"`
	Location   GeoPoint      `json:"location"`
	Status     VehicleStatus `json:"status"`

	// CurrentRoute holds the IDs of orders assigned to the vehicle, in
	// visiting order. It is written by the fleet registry after a plan is
	// consumed, never by the planner itself.
	CurrentRoute []string `json:"current_route,omitempty"`
}

// Available reports whether the vehicle can receive assignments.
func (v Vehicle) Available() bool {
	return v.Status == VehicleAvailable
}

// Validate checks the vehicle is well formed.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if v.CapacityKg <= 0 {
		return ValidationError{Field: "capacity_kg", Reason: "must be positive"}
	}
	if err := v.Location.Validate(); err != nil {
		return err
	}
	return nil
}
