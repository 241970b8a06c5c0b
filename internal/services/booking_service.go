package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/pkg/validator"
)

// BookingService sells seats through both channels: online self-service
// purchases and counter sales by an employee. Both paths converge on the same
// seat allocation under the trip's lock, so the two channels can never sell
// the same seat.
type BookingService struct {
	tickets      TicketStore
	customers    CustomerStore
	availability *AvailabilityService
	payments     *PaymentService
	notifier     Notifier
	contact      *validator.ContactValidator
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	tickets TicketStore,
	customers CustomerStore,
	availability *AvailabilityService,
	payments *PaymentService,
	notifier Notifier,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		tickets:      tickets,
		customers:    customers,
		availability: availability,
		payments:     payments,
		notifier:     notifier,
		contact:      validator.NewContactValidator(),
		logger:       logger,
	}
}

// BookOnline sells one or more specific seats to a self-service customer.
// Payment is authorized before any ticket is persisted, so a declined card
// never leaves tickets behind.
func (s *BookingService) BookOnline(req *models.BookingRequest) (*models.BookingResult, error) {
	phone, err := s.contact.ValidatePhone(req.Phone)
	if err != nil {
		return nil, &models.ValidationError{Field: "phone", Reason: err.Error()}
	}
	if err := s.contact.ValidateEmail(req.Email); err != nil {
		return nil, &models.ValidationError{Field: "email", Reason: err.Error()}
	}
	if err := validateSeatSet(req.Seats); err != nil {
		return nil, err
	}

	if _, _, err := s.customers.GetOrCreate(phone, req.Email); err != nil {
		return nil, err
	}

	charge := func(snapshot *tripSnapshot) error {
		amount := snapshot.trip.Price * float64(len(req.Seats))
		return s.payments.Charge(req.Payment, amount)
	}

	result, err := s.book(req.TripID, req.Seats, phone, req.Email, nil, charge, req.NotifySMS)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BookCounter sells seats at the desk on behalf of the acting employee. Cash
// is settled at the counter, so no payment instrument is involved. Contact
// details are optional; when present the ticket is also delivered digitally.
func (s *BookingService) BookCounter(employeeID string, req *models.CounterBookingRequest) (*models.BookingResult, error) {
	if employeeID == "" {
		return nil, &models.ValidationError{Field: "employee_id", Reason: "acting employee is required for counter sales"}
	}

	phone := req.Phone
	if phone != "" {
		sanitized, err := s.contact.ValidatePhone(phone)
		if err != nil {
			return nil, &models.ValidationError{Field: "phone", Reason: err.Error()}
		}
		phone = sanitized
	}
	if req.Email != "" {
		if err := s.contact.ValidateEmail(req.Email); err != nil {
			return nil, &models.ValidationError{Field: "email", Reason: err.Error()}
		}
	}
	if err := validateSeatSet(req.Seats); err != nil {
		return nil, err
	}

	if phone != "" {
		if _, _, err := s.customers.GetOrCreate(phone, req.Email); err != nil {
			return nil, err
		}
	}

	return s.book(req.TripID, req.Seats, phone, req.Email, &employeeID, nil, false)
}

// book allocates the requested seats under the trip's lock. The charge hook
// runs after availability is confirmed but before anything is persisted.
//
// Each seat is persisted as its own ticket. If an insert fails partway, the
// tickets already written stay durable and sold; the error reports exactly
// which seats were issued and which were not, so the caller retries only the
// failed remainder.
func (s *BookingService) book(
	tripID string,
	seats []int,
	phone, email string,
	employeeID *string,
	charge func(*tripSnapshot) error,
	notifySMS bool,
) (*models.BookingResult, error) {
	unlock := s.availability.lockTrip(tripID)
	defer unlock()

	snapshot, err := s.availability.snapshot(tripID)
	if err != nil {
		return nil, err
	}

	for _, seat := range seats {
		if seat < 1 || seat > snapshot.vehicle.Capacity {
			return nil, &models.InvalidSeatError{Seat: seat, Capacity: snapshot.vehicle.Capacity}
		}
	}

	taken := []int{}
	for _, seat := range seats {
		if snapshot.occupied[seat] {
			taken = append(taken, seat)
		}
	}
	if len(taken) > 0 {
		return nil, &models.SeatUnavailableError{TripID: tripID, Seats: taken}
	}

	if snapshot.freeSeatCount() < len(seats) {
		return nil, models.ErrInsufficientCapacity
	}

	if charge != nil {
		if err := charge(snapshot); err != nil {
			return nil, err
		}
	}

	issued := []models.IssuedTicket{}
	tickets := []*models.Ticket{}
	now := time.Now()
	for i, seat := range seats {
		seatNumber := seat
		ticket := &models.Ticket{
			ID:         uuid.New().String(),
			Code:       uuid.New().String(),
			TripID:     tripID,
			SeatNumber: &seatNumber,
			TravelDate: snapshot.trip.TripDate,
			IssuedAt:   now,
			EmployeeID: employeeID,
			Phone:      phone,
			Email:      email,
			Price:      snapshot.trip.Price,
		}

		if err := s.tickets.Create(ticket); err != nil {
			// Seats already written are sold. Advance the count for them
			// before surfacing the failure.
			s.settleSoldCount(tripID, snapshot, len(issued))
			return nil, &models.PartialBookingError{
				TripID:      tripID,
				Issued:      issued,
				FailedSeats: seats[i:],
				Err:         err,
			}
		}

		issued = append(issued, models.IssuedTicket{
			TicketID:   ticket.ID,
			SeatNumber: seat,
			Code:       ticket.Code,
		})
		tickets = append(tickets, ticket)
	}

	s.settleSoldCount(tripID, snapshot, len(issued))

	s.logger.WithFields(logrus.Fields{
		"trip_id": tripID,
		"seats":   seats,
		"counter": employeeID != nil,
	}).Info("Booking completed")

	if s.notifier != nil && email != "" {
		for _, ticket := range tickets {
			go s.notifier.TicketIssued(ticket, snapshot.trip, notifySMS)
		}
	}

	return &models.BookingResult{TripID: tripID, Tickets: issued}, nil
}

// settleSoldCount advances the cached count by the tickets just written.
// A write failure here is only drift: the next availability read repairs it.
func (s *BookingService) settleSoldCount(tripID string, snapshot *tripSnapshot, issuedCount int) {
	if issuedCount == 0 {
		return
	}

	newCount := len(snapshot.occupied) + issuedCount
	if err := s.availability.trips.UpdateSoldCount(tripID, newCount); err != nil {
		s.logger.WithFields(logrus.Fields{
			"trip_id": tripID,
			"count":   newCount,
		}).WithError(err).Warn("Failed to advance sold count, will self-heal on next read")
	}
}

// validateSeatSet rejects empty or duplicated seat requests
func validateSeatSet(seats []int) error {
	if len(seats) == 0 {
		return &models.ValidationError{Field: "seats", Reason: "at least one seat is required"}
	}

	seen := make(map[int]bool, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			return &models.ValidationError{Field: "seats", Reason: "duplicate seat numbers in request"}
		}
		seen[seat] = true
	}

	return nil
}
