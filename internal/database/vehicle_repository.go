package database

import (
	"database/sql"
	"fmt"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// VehicleRepository handles database operations for vehicles
type VehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create registers a new vehicle
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, capacity, route_label)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(query, vehicle.ID, vehicle.Capacity, vehicle.RouteLabel).
		Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(vehicleID string) (*models.Vehicle, error) {
	query := `
		SELECT id, capacity, route_label, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	vehicle := &models.Vehicle{}
	err := r.db.QueryRow(query, vehicleID).Scan(
		&vehicle.ID, &vehicle.Capacity, &vehicle.RouteLabel,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	return vehicle, nil
}

// List retrieves all vehicles ordered by registration time
func (r *VehicleRepository) List() ([]models.Vehicle, error) {
	query := `
		SELECT id, capacity, route_label, created_at, updated_at
		FROM vehicles
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		var vehicle models.Vehicle
		err := rows.Scan(
			&vehicle.ID, &vehicle.Capacity, &vehicle.RouteLabel,
			&vehicle.CreatedAt, &vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

// UpdateCapacity changes a vehicle's seat capacity
func (r *VehicleRepository) UpdateCapacity(vehicleID string, capacity int) error {
	query := `
		UPDATE vehicles
		SET capacity = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(query, capacity, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle capacity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrVehicleNotFound
	}

	return nil
}
