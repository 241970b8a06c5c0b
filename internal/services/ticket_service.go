package services

import (
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// TicketService handles ticket lookup, cancellation and re-delivery
type TicketService struct {
	tickets      TicketStore
	availability *AvailabilityService
	notifier     Notifier
	logger       *logrus.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(tickets TicketStore, availability *AvailabilityService, notifier Notifier, logger *logrus.Logger) *TicketService {
	return &TicketService{
		tickets:      tickets,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
	}
}

// GetByCode retrieves a ticket by its redemption code
func (s *TicketService) GetByCode(code string) (*models.Ticket, error) {
	return s.tickets.GetByCode(code)
}

// Cancel voids a ticket and releases its seat back to the trip
func (s *TicketService) Cancel(code string) error {
	ticket, err := s.tickets.GetByCode(code)
	if err != nil {
		return err
	}
	if ticket.Cancelled {
		return models.ErrTicketNotFound
	}

	unlock := s.availability.lockTrip(ticket.TripID)
	defer unlock()

	snapshot, err := s.availability.snapshot(ticket.TripID)
	if err != nil {
		return err
	}

	if err := s.tickets.Cancel(ticket.ID); err != nil {
		return err
	}

	if err := s.availability.trips.UpdateSoldCount(ticket.TripID, len(snapshot.occupied)-1); err != nil {
		s.logger.WithField("trip_id", ticket.TripID).WithError(err).
			Warn("Failed to release sold count, will self-heal on next read")
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"trip_id":   ticket.TripID,
		"seat":      ticket.Seat(),
	}).Info("Ticket cancelled")

	return nil
}

// Resend re-delivers the ticket document to the passenger's contact details
func (s *TicketService) Resend(code string) error {
	ticket, err := s.tickets.GetByCode(code)
	if err != nil {
		return err
	}
	if ticket.Cancelled {
		return models.ErrTicketNotFound
	}
	if ticket.Email == "" {
		return &models.ValidationError{Field: "email", Reason: "ticket has no contact email on record"}
	}

	trip, err := s.availability.trips.GetByID(ticket.TripID)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		go s.notifier.TicketIssued(ticket, trip, ticket.Phone != "")
	}

	return nil
}
