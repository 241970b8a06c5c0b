package database

import (
	"database/sql"
	"fmt"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create registers a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	query := `
		INSERT INTO customers (phone, email)
		VALUES ($1, $2)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(query, customer.Phone, customer.Email).
		Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByPhone retrieves a customer by phone number
func (r *CustomerRepository) GetByPhone(phone string) (*models.Customer, error) {
	query := `
		SELECT phone, email, created_at, updated_at
		FROM customers
		WHERE phone = $1
	`

	customer := &models.Customer{}
	err := r.db.QueryRow(query, phone).Scan(
		&customer.Phone, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	return customer, nil
}

// GetOrCreate fetches the customer with the given phone, creating the record
// on first purchase. Returns whether a new record was created.
func (r *CustomerRepository) GetOrCreate(phone, email string) (*models.Customer, bool, error) {
	customer, err := r.GetByPhone(phone)
	if err == nil {
		return customer, false, nil
	}
	if err != models.ErrCustomerNotFound {
		return nil, false, err
	}

	customer = &models.Customer{Phone: phone, Email: email}
	if err := r.Create(customer); err != nil {
		return nil, false, err
	}

	return customer, true, nil
}
