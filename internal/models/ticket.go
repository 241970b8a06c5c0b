package models

import "time"

// Ticket represents a sold seat on a trip, identified by a unique opaque
// redemption code. Relocating a ticket re-mints the code so the old one can
// no longer redeem.
type Ticket struct {
	ID          string     `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	TripID      string     `json:"trip_id" db:"trip_id"`
	SeatNumber  *int       `json:"seat_number" db:"seat_number"` // nil only transiently during a reseat conflict
	TravelDate  time.Time  `json:"travel_date" db:"travel_date"`
	IssuedAt    time.Time  `json:"issued_at" db:"issued_at"`
	EmployeeID  *string    `json:"employee_id,omitempty" db:"employee_id"` // nil for self-service sales
	Phone       string     `json:"phone" db:"phone"`
	Email       string     `json:"email" db:"email"`
	Price       float64    `json:"price" db:"price"`
	Cancelled   bool       `json:"cancelled" db:"cancelled"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Seat returns the assigned seat number, or 0 when none is assigned.
func (t *Ticket) Seat() int {
	if t.SeatNumber == nil {
		return 0
	}
	return *t.SeatNumber
}
