package services

import (
	"time"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// The seat-inventory services depend on narrow store interfaces rather than
// the concrete repositories so their invariants can be tested against
// in-memory implementations. The database package satisfies all of them.

// TripStore provides the trip rows the inventory services operate on
type TripStore interface {
	GetByID(tripID string) (*models.Trip, error)
	UpdateSoldCount(tripID string, soldCount int) error
	ListIDs() ([]string, error)
}

// VehicleStore provides vehicle capacity lookups
type VehicleStore interface {
	GetByID(vehicleID string) (*models.Vehicle, error)
}

// TicketStore provides ticket persistence and the occupied-seat ground truth
type TicketStore interface {
	Create(ticket *models.Ticket) error
	GetByCode(code string) (*models.Ticket, error)
	OccupiedSeats(tripID string) ([]int, error)
	Relocate(ticketID, newCode, newTripID string, newTravelDate time.Time, newSeat int) error
	Cancel(ticketID string) error
}

// CustomerStore provides phone-keyed customer records
type CustomerStore interface {
	GetByPhone(phone string) (*models.Customer, error)
	GetOrCreate(phone, email string) (*models.Customer, bool, error)
}

// EmployeeStore provides counter employee lookups
type EmployeeStore interface {
	GetByID(employeeID string) (*models.Employee, error)
	GetByUsername(username string) (*models.Employee, error)
}

// Notifier delivers ticket documents to passengers. Implementations must not
// block booking: delivery failures are logged, never propagated.
type Notifier interface {
	TicketIssued(ticket *models.Ticket, trip *models.Trip, viaSMS bool)
	TicketRelocated(ticket *models.Ticket, trip *models.Trip)
}
