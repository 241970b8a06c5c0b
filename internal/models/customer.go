package models

import "time"

// Customer is a lightweight record keyed by phone number, created on first
// purchase and looked up by phone thereafter.
type Customer struct {
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
