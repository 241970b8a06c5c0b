package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

func newTicketService(store *memStore, notifier Notifier) *TicketService {
	availability := newAvailability(store)
	return NewTicketService(store, availability, notifier, testLogger())
}

func TestCancelTicketService(t *testing.T) {
	t.Run("Cancel Releases Seat", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-1", "bus-1", 1)
		ticket := store.addTicket("trip-1", 3, "0712345678", "rider@example.com")
		svc := newTicketService(store, nil)

		require.NoError(t, svc.Cancel(ticket.Code))

		availability := newAvailability(store)
		seats, err := availability.FreeSeats("trip-1")
		require.NoError(t, err)
		assert.Contains(t, seats, 3)
		assert.Equal(t, 0, store.soldCount("trip-1"))
	})

	t.Run("Cancel Twice Fails", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-1", "bus-1", 1)
		ticket := store.addTicket("trip-1", 3, "0712345678", "rider@example.com")
		svc := newTicketService(store, nil)

		require.NoError(t, svc.Cancel(ticket.Code))
		err := svc.Cancel(ticket.Code)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		store := newMemStore()
		svc := newTicketService(store, nil)

		err := svc.Cancel("no-such-code")
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})
}

func TestResendTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-1", "bus-1", 1)
		ticket := store.addTicket("trip-1", 3, "0712345678", "rider@example.com")
		notifier := &fakeNotifier{}
		svc := newTicketService(store, notifier)

		require.NoError(t, svc.Resend(ticket.Code))

		assert.Eventually(t, func() bool {
			notifier.mu.Lock()
			defer notifier.mu.Unlock()
			return notifier.issued == 1
		}, waitTimeout, waitTick)
	})

	t.Run("No Email On Record", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-1", "bus-1", 1)
		ticket := store.addTicket("trip-1", 3, "0712345678", "")
		svc := newTicketService(store, &fakeNotifier{})

		err := svc.Resend(ticket.Code)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "email", validationErr.Field)
	})

	t.Run("Cancelled Ticket", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-1", "bus-1", 1)
		ticket := store.addTicket("trip-1", 3, "0712345678", "rider@example.com")
		require.NoError(t, store.Cancel(ticket.ID))
		svc := newTicketService(store, &fakeNotifier{})

		err := svc.Resend(ticket.Code)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})
}
