package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create schedules a new trip
func (r *TripRepository) Create(trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			id, trip_date, departure_at, origin, destination,
			price, vehicle_id, sold_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		trip.ID, trip.TripDate, trip.DepartureAt, trip.Origin, trip.Destination,
		trip.Price, trip.VehicleID, trip.SoldCount,
	).Scan(&trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

// GetByID retrieves a trip by ID
func (r *TripRepository) GetByID(tripID string) (*models.Trip, error) {
	query := `
		SELECT
			id, trip_date, departure_at, origin, destination,
			price, vehicle_id, sold_count, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	trip := &models.Trip{}
	err := r.db.QueryRow(query, tripID).Scan(
		&trip.ID, &trip.TripDate, &trip.DepartureAt, &trip.Origin, &trip.Destination,
		&trip.Price, &trip.VehicleID, &trip.SoldCount, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}

	return trip, nil
}

// ListIDs retrieves the ids of all trips, oldest first. Used by the
// reconciliation sweep.
func (r *TripRepository) ListIDs() ([]string, error) {
	query := `SELECT id FROM trips ORDER BY created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListUpcoming retrieves trips departing on or after the given instant
func (r *TripRepository) ListUpcoming(from time.Time) ([]models.Trip, error) {
	query := `
		SELECT
			id, trip_date, departure_at, origin, destination,
			price, vehicle_id, sold_count, created_at, updated_at
		FROM trips
		WHERE departure_at >= $1
		ORDER BY departure_at ASC
	`

	return r.selectTrips(query, from)
}

// Search retrieves trips matching an origin, destination and travel date
func (r *TripRepository) Search(origin, destination string, tripDate time.Time) ([]models.Trip, error) {
	query := `
		SELECT
			id, trip_date, departure_at, origin, destination,
			price, vehicle_id, sold_count, created_at, updated_at
		FROM trips
		WHERE origin = $1 AND destination = $2 AND trip_date = $3
		ORDER BY departure_at ASC
	`

	return r.selectTrips(query, origin, destination, tripDate)
}

// UpdateSoldCount sets the cached sold-seat count on a trip
func (r *TripRepository) UpdateSoldCount(tripID string, soldCount int) error {
	query := `
		UPDATE trips
		SET sold_count = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(query, soldCount, tripID)
	if err != nil {
		return fmt.Errorf("failed to update sold count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrTripNotFound
	}

	return nil
}

func (r *TripRepository) selectTrips(query string, args ...interface{}) ([]models.Trip, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var trip models.Trip
		err := rows.Scan(
			&trip.ID, &trip.TripDate, &trip.DepartureAt, &trip.Origin, &trip.Destination,
			&trip.Price, &trip.VehicleID, &trip.SoldCount, &trip.CreatedAt, &trip.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}
