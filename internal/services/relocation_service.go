package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// RelocationService moves a ticket onto another trip.
//
// Phase one tries to keep the passenger's seat number. If that seat is taken
// on the destination, the call returns a NeedsSeatChoice result carrying the
// free seats; phase two re-invokes with the chosen seat. Either phase commits
// atomically under both trips' locks: the ticket gets a fresh code, the old
// code stops resolving, and both sold counts move together.
type RelocationService struct {
	tickets      TicketStore
	availability *AvailabilityService
	notifier     Notifier
	logger       *logrus.Logger
}

// NewRelocationService creates a new RelocationService
func NewRelocationService(tickets TicketStore, availability *AvailabilityService, notifier Notifier, logger *logrus.Logger) *RelocationService {
	return &RelocationService{
		tickets:      tickets,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
	}
}

// Relocate moves the ticket identified by code onto the destination trip.
// When req.Seat is nil the ticket's current seat number is tried first.
func (s *RelocationService) Relocate(code string, req *models.RelocateRequest) (*models.RelocationResult, error) {
	for {
		ticket, err := s.tickets.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if ticket.Cancelled {
			return nil, models.ErrTicketNotFound
		}

		unlock := s.availability.lockTripPair(ticket.TripID, req.DestinationTripID)

		// Re-read under the locks. If a concurrent relocation already moved
		// the ticket, the origin lock covers the wrong trip: start over.
		current, err := s.tickets.GetByCode(code)
		if err != nil {
			unlock()
			return nil, err
		}
		if current.Cancelled {
			unlock()
			return nil, models.ErrTicketNotFound
		}
		if current.TripID != ticket.TripID {
			unlock()
			continue
		}

		result, err := s.relocateLocked(current, req)
		unlock()
		return result, err
	}
}

// relocateLocked performs the move. Caller holds both trips' locks.
func (s *RelocationService) relocateLocked(ticket *models.Ticket, req *models.RelocateRequest) (*models.RelocationResult, error) {
	origin, err := s.availability.snapshot(ticket.TripID)
	if err != nil {
		return nil, err
	}
	dest, err := s.availability.snapshot(req.DestinationTripID)
	if err != nil {
		return nil, err
	}

	sameTrip := ticket.TripID == req.DestinationTripID

	// A move within the same trip contends with every seat except its own
	occupied := dest.occupied
	if sameTrip {
		occupied = make(map[int]bool, len(dest.occupied))
		for seat := range dest.occupied {
			occupied[seat] = true
		}
		delete(occupied, ticket.Seat())
	}

	if len(occupied) >= dest.vehicle.Capacity {
		return nil, models.ErrInsufficientCapacity
	}

	seat := ticket.Seat()
	if req.Seat != nil {
		seat = *req.Seat
	}

	if seat < 1 || seat > dest.vehicle.Capacity {
		return nil, &models.InvalidSeatError{Seat: seat, Capacity: dest.vehicle.Capacity}
	}

	if occupied[seat] {
		// A chosen seat that got taken between the two phases is an error;
		// the caller restarts. Only the passenger's own seat being taken
		// asks for a choice.
		if req.Seat != nil {
			return nil, models.ErrSeatNoLongerAvailable
		}

		free := []int{}
		for n := 1; n <= dest.vehicle.Capacity; n++ {
			if !occupied[n] {
				free = append(free, n)
			}
		}
		return &models.RelocationResult{
			State:     models.RelocationNeedsSeatChoice,
			FreeSeats: free,
		}, nil
	}

	newCode := uuid.New().String()
	if err := s.tickets.Relocate(ticket.ID, newCode, dest.trip.ID, dest.trip.TripDate, seat); err != nil {
		return nil, err
	}

	if !sameTrip {
		s.settle(origin.trip.ID, len(origin.occupied)-1)
		s.settle(dest.trip.ID, len(dest.occupied)+1)
	}

	oldSeat := ticket.Seat()
	ticket.Code = newCode
	ticket.TripID = dest.trip.ID
	ticket.TravelDate = dest.trip.TripDate
	ticket.SeatNumber = &seat

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"from_trip": origin.trip.ID,
		"to_trip":   dest.trip.ID,
		"from_seat": oldSeat,
		"to_seat":   seat,
	}).Info("Ticket relocated")

	if s.notifier != nil && ticket.Email != "" {
		go s.notifier.TicketRelocated(ticket, dest.trip)
	}

	return &models.RelocationResult{
		State:  models.RelocationCommitted,
		Ticket: ticket,
	}, nil
}

// settle writes a sold count; drift from a failed write heals on next read
func (s *RelocationService) settle(tripID string, count int) {
	if err := s.availability.trips.UpdateSoldCount(tripID, count); err != nil {
		s.logger.WithFields(logrus.Fields{
			"trip_id": tripID,
			"count":   count,
		}).WithError(err).Warn("Failed to settle sold count, will self-heal on next read")
	}
}
