package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the seat-inventory core. Handlers map these onto HTTP
// statuses; services wrap them with context via fmt.Errorf("%w").
var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrVehicleNotFound  = errors.New("vehicle not found") // dangling vehicle reference, data-integrity error
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmployeeNotFound = errors.New("employee not found")

	ErrInsufficientCapacity  = errors.New("not enough free seats on trip")
	ErrSeatNoLongerAvailable = errors.New("chosen seat is no longer available")
	ErrPaymentDeclined       = errors.New("payment declined")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// ValidationError reports malformed boundary input (phone, email, seat count).
// Always safe to retry after correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidSeatError reports a requested seat number outside [1, capacity].
type InvalidSeatError struct {
	Seat     int
	Capacity int
}

func (e *InvalidSeatError) Error() string {
	return fmt.Sprintf("seat %d is outside the valid range [1, %d]", e.Seat, e.Capacity)
}

// SeatUnavailableError reports requested seats that are already taken on the
// trip. It carries the contested seat numbers so the caller can re-pick.
type SeatUnavailableError struct {
	TripID string
	Seats  []int
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seats %v are already taken on trip %s", e.Seats, e.TripID)
}

// PartialBookingError reports a multi-seat booking that failed after some
// tickets were already durable. The issued tickets remain valid; retrying the
// whole batch would duplicate them, so callers must retry only FailedSeats.
type PartialBookingError struct {
	TripID      string
	Issued      []IssuedTicket
	FailedSeats []int
	Err         error
}

func (e *PartialBookingError) Error() string {
	return fmt.Sprintf("booking on trip %s failed for seats %v after %d ticket(s) were issued: %v",
		e.TripID, e.FailedSeats, len(e.Issued), e.Err)
}

func (e *PartialBookingError) Unwrap() error {
	return e.Err
}
