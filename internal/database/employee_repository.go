package database

import (
	"database/sql"
	"fmt"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// EmployeeRepository handles database operations for counter employees
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create registers a new employee
func (r *EmployeeRepository) Create(employee *models.Employee) error {
	query := `
		INSERT INTO employees (id, username, full_name, password_hash, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		employee.ID, employee.Username, employee.FullName,
		employee.PasswordHash, employee.Status,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(employeeID string) (*models.Employee, error) {
	query := `
		SELECT id, username, full_name, password_hash, status, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	return r.scanEmployee(r.db.QueryRow(query, employeeID))
}

// GetByUsername retrieves an employee by username
func (r *EmployeeRepository) GetByUsername(username string) (*models.Employee, error) {
	query := `
		SELECT id, username, full_name, password_hash, status, created_at, updated_at
		FROM employees
		WHERE username = $1
	`

	return r.scanEmployee(r.db.QueryRow(query, username))
}

func (r *EmployeeRepository) scanEmployee(row *sql.Row) (*models.Employee, error) {
	employee := &models.Employee{}
	err := row.Scan(
		&employee.ID, &employee.Username, &employee.FullName,
		&employee.PasswordHash, &employee.Status,
		&employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}

	return employee, nil
}
