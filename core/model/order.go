package model

import (
	"time"
)

// Priority classifies how urgent a delivery is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Feature maps the priority to a numeric value in [0,1] suitable for the
// duration estimator's feature vector.
func (p Priority) Feature() float64 {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 0.5
	default:
		return 0
	}
}

// OrderStatus tracks the delivery lifecycle of an order. Transitions are
// driven by the intake workflow; the planning engine never mutates it.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderDelivered  OrderStatus = "delivered"
)

// TimeWindow is the interval in which a delivery should happen.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DeliveryOrder is a single delivery request.
type DeliveryOrder struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Address  string      `json:"address"`
	Location GeoPoint    `json:"location"`
	WeightKg float64     `json:"weight_kg"`
	Priority Priority    `json:"priority"`
	Window   TimeWindow  `json:"window"`
	Status   OrderStatus `json:"status"`

	// EstimatedMinutes is stamped by the caller after consulting the
	// duration estimator. Zero means no estimate yet.
	EstimatedMinutes float64 `json:"estimated_minutes,omitempty"`
}

// Validate checks the order is well formed. It is called at the service
// boundary; the planner assumes validated input.
func (o DeliveryOrder) Validate() error {
	if o.ID == "" {
		return ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if o.WeightKg <= 0 {
		return ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}
	if !o.Priority.Valid() {
		return ValidationError{Field: "priority", Reason: "unknown priority " + string(o.Priority)}
	}
	if err := o.Location.Validate(); err != nil {
		return err
	}
	return nil
}
