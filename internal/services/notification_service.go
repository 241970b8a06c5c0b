package services

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/smarttransit/bus-ticketing-backend/internal/config"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/pkg/sms"
)

// NotificationService delivers ticket documents over email and SMS. It never
// returns errors to callers: a booking that sold a seat is done, whether or
// not the confirmation got through. Failures are logged for follow-up.
type NotificationService struct {
	smtp      config.SMTPConfig
	gateway   sms.Gateway
	documents *DocumentService
	logger    *logrus.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(smtp config.SMTPConfig, gateway sms.Gateway, documents *DocumentService, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		smtp:      smtp,
		gateway:   gateway,
		documents: documents,
		logger:    logger,
	}
}

// TicketIssued sends the ticket document to the passenger
func (s *NotificationService) TicketIssued(ticket *models.Ticket, trip *models.Trip, viaSMS bool) {
	subject := fmt.Sprintf("Your ticket: %s to %s on %s",
		trip.Origin, trip.Destination, ticket.TravelDate.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Your seat %d on the %s to %s service (%s, departing %s) is confirmed.\n\nTicket code: %s\n\nThe attached PDF carries a QR code; present it when boarding.",
		ticket.Seat(), trip.Origin, trip.Destination,
		ticket.TravelDate.Format("2006-01-02"), trip.DepartureAt.Format("15:04"),
		ticket.Code,
	)

	s.sendEmail(ticket, trip, subject, body)

	if viaSMS && ticket.Phone != "" {
		message := fmt.Sprintf("SmartTransit: seat %d confirmed, %s to %s on %s. Code %s",
			ticket.Seat(), trip.Origin, trip.Destination,
			ticket.TravelDate.Format("2006-01-02"), ticket.Code)
		if err := s.gateway.Send(ticket.Phone, message); err != nil {
			s.logger.WithField("ticket_id", ticket.ID).WithError(err).Error("Failed to send ticket SMS")
		}
	}
}

// TicketRelocated tells the passenger their ticket moved and re-sends the
// document, since the old code no longer admits them.
func (s *NotificationService) TicketRelocated(ticket *models.Ticket, trip *models.Trip) {
	subject := fmt.Sprintf("Your ticket was moved: %s to %s on %s",
		trip.Origin, trip.Destination, ticket.TravelDate.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Your booking was moved to the %s to %s service on %s, seat %d.\n\nYour previous ticket code is no longer valid. New code: %s\n\nThe attached PDF replaces your old ticket.",
		trip.Origin, trip.Destination, ticket.TravelDate.Format("2006-01-02"),
		ticket.Seat(), ticket.Code,
	)

	s.sendEmail(ticket, trip, subject, body)

	if ticket.Phone != "" {
		message := fmt.Sprintf("SmartTransit: your ticket moved to %s to %s on %s, seat %d. New code %s",
			trip.Origin, trip.Destination, ticket.TravelDate.Format("2006-01-02"),
			ticket.Seat(), ticket.Code)
		if err := s.gateway.Send(ticket.Phone, message); err != nil {
			s.logger.WithField("ticket_id", ticket.ID).WithError(err).Error("Failed to send relocation SMS")
		}
	}
}

func (s *NotificationService) sendEmail(ticket *models.Ticket, trip *models.Trip, subject, body string) {
	if ticket.Email == "" {
		return
	}

	pdfBytes, err := s.documents.TicketPDF(ticket, trip)
	if err != nil {
		s.logger.WithField("ticket_id", ticket.ID).WithError(err).Error("Failed to render ticket document")
		return
	}

	client, err := mail.NewClient(
		s.smtp.Host,
		mail.WithPort(s.smtp.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.smtp.Username),
		mail.WithPassword(s.smtp.Password),
	)
	if err != nil {
		s.logger.WithError(err).Error("Failed to initialize smtp client")
		return
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.smtp.FromName, s.smtp.From); err != nil {
		s.logger.WithError(err).Error("Failed to set From address")
		return
	}
	if err := msg.To(ticket.Email); err != nil {
		s.logger.WithField("email", ticket.Email).WithError(err).Error("Failed to set To address")
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := msg.AttachReader(fmt.Sprintf("ticket-%s.pdf", ticket.ID), bytes.NewReader(pdfBytes)); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).WithError(err).Error("Failed to attach ticket document")
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		s.logger.WithField("ticket_id", ticket.ID).WithError(err).Error("Failed to send ticket email")
	}
}
