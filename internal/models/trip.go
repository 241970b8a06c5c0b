package models

import (
	"errors"
	"time"
)

// Trip represents a single scheduled departure of a vehicle.
//
// SoldCount is a cached projection of how many seats are occupied. The
// authoritative fact is the set of seat numbers on the trip's non-cancelled
// tickets; the availability service corrects SoldCount in place whenever the
// two disagree.
type Trip struct {
	ID          string    `json:"id" db:"id"`
	TripDate    time.Time `json:"trip_date" db:"trip_date"`
	DepartureAt time.Time `json:"departure_at" db:"departure_at"`
	Origin      string    `json:"origin" db:"origin"`
	Destination string    `json:"destination" db:"destination"`
	Price       float64   `json:"price" db:"price"`
	VehicleID   string    `json:"vehicle_id" db:"vehicle_id"`
	SoldCount   int       `json:"sold_count" db:"sold_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTripRequest represents the request to schedule a new trip
type CreateTripRequest struct {
	TripDate    string  `json:"trip_date" binding:"required"` // YYYY-MM-DD
	DepartureAt string  `json:"departure_at" binding:"required"`
	Origin      string  `json:"origin" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	VehicleID   string  `json:"vehicle_id" binding:"required"`
}

// Validate validates the create trip request
func (r *CreateTripRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.TripDate); err != nil {
		return errors.New("trip_date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(time.RFC3339, r.DepartureAt); err != nil {
		return errors.New("departure_at must be an RFC 3339 timestamp")
	}
	if r.Origin == r.Destination {
		return errors.New("origin and destination must differ")
	}
	return nil
}
