package model

import "math"

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate is finite and within range.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) ||
		math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return ValidationError{Field: "location", Reason: "coordinate must be finite"}
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return ValidationError{Field: "location.latitude", Reason: "must be within [-90,90]"}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ValidationError{Field: "location.longitude", Reason: "must be within [-180,180]"}
	}
	return nil
}
