package models

import "time"

// EmployeeStatus represents the account status of a counter employee
type EmployeeStatus string

const (
	EmployeeStatusActive    EmployeeStatus = "active"
	EmployeeStatusSuspended EmployeeStatus = "suspended"
)

// Employee represents a counter employee who can issue tickets at the desk.
// The acting employee's id is threaded explicitly through every counter sale;
// it is never stored on a shared service.
type Employee struct {
	ID           string         `json:"id" db:"id"`
	Username     string         `json:"username" db:"username"`
	FullName     string         `json:"full_name" db:"full_name"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Status       EmployeeStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// LoginRequest represents an employee login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
