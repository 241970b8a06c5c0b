package models

import (
	"errors"
	"time"
)

// Vehicle represents a bus in the fleet. Capacity bounds the seat numbers
// that can ever be sold on a trip served by this vehicle.
type Vehicle struct {
	ID         string    `json:"id" db:"id"`
	Capacity   int       `json:"capacity" db:"capacity"`
	RouteLabel string    `json:"route_label" db:"route_label"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateVehicleRequest represents the request to register a new vehicle
type CreateVehicleRequest struct {
	Capacity   int    `json:"capacity" binding:"required,gt=0"`
	RouteLabel string `json:"route_label" binding:"required"`
}

// UpdateCapacityRequest represents an administrative capacity change
type UpdateCapacityRequest struct {
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

// Validate validates the create vehicle request
func (r *CreateVehicleRequest) Validate() error {
	if r.Capacity <= 0 {
		return errors.New("capacity must be a positive integer")
	}
	return nil
}
