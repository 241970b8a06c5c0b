package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

func newRelocation(store *memStore, notifier Notifier) *RelocationService {
	availability := newAvailability(store)
	return NewRelocationService(store, availability, notifier, testLogger())
}

func seatPtr(n int) *int { return &n }

func TestRelocate(t *testing.T) {
	t.Run("Same Seat Free On Destination", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 10)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 0)
		ticket := store.addTicket("trip-a", 7, "0712345678", "rider@example.com")
		oldCode := ticket.Code
		svc := newRelocation(store, nil)

		result, err := svc.Relocate(oldCode, &models.RelocateRequest{DestinationTripID: "trip-b"})
		require.NoError(t, err)
		assert.Equal(t, models.RelocationCommitted, result.State)
		require.NotNil(t, result.Ticket)
		assert.Equal(t, "trip-b", result.Ticket.TripID)
		assert.Equal(t, 7, result.Ticket.Seat())
		assert.NotEqual(t, oldCode, result.Ticket.Code, "relocation mints a fresh code")

		// Old code no longer resolves
		_, err = store.GetByCode(oldCode)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)

		// Both sold counts moved together
		assert.Equal(t, 0, store.soldCount("trip-a"))
		assert.Equal(t, 1, store.soldCount("trip-b"))
	})

	t.Run("Seat Taken Returns Choice", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 1)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		store.addTicket("trip-b", 2, "0798765432", "other@example.com")
		svc := newRelocation(store, nil)

		result, err := svc.Relocate(ticket.Code, &models.RelocateRequest{DestinationTripID: "trip-b"})
		require.NoError(t, err)
		assert.Equal(t, models.RelocationNeedsSeatChoice, result.State)
		assert.Equal(t, []int{1, 3, 4}, result.FreeSeats)
		assert.Nil(t, result.Ticket)

		// Nothing moved
		moved, err := store.GetByCode(ticket.Code)
		require.NoError(t, err)
		assert.Equal(t, "trip-a", moved.TripID)
		assert.Equal(t, 1, store.soldCount("trip-a"))
		assert.Equal(t, 1, store.soldCount("trip-b"))
	})

	t.Run("Second Phase With Chosen Seat", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 1)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		store.addTicket("trip-b", 2, "0798765432", "other@example.com")
		svc := newRelocation(store, nil)

		first, err := svc.Relocate(ticket.Code, &models.RelocateRequest{DestinationTripID: "trip-b"})
		require.NoError(t, err)
		require.Equal(t, models.RelocationNeedsSeatChoice, first.State)

		second, err := svc.Relocate(ticket.Code, &models.RelocateRequest{
			DestinationTripID: "trip-b",
			Seat:              seatPtr(first.FreeSeats[0]),
		})
		require.NoError(t, err)
		assert.Equal(t, models.RelocationCommitted, second.State)
		assert.Equal(t, 1, second.Ticket.Seat())
		assert.Equal(t, 0, store.soldCount("trip-a"))
		assert.Equal(t, 2, store.soldCount("trip-b"))
	})

	t.Run("Chosen Seat Taken Meanwhile", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 2)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		store.addTicket("trip-b", 2, "0798765432", "other@example.com")
		store.addTicket("trip-b", 3, "0798765432", "other@example.com")
		svc := newRelocation(store, nil)

		_, err := svc.Relocate(ticket.Code, &models.RelocateRequest{
			DestinationTripID: "trip-b",
			Seat:              seatPtr(3),
		})
		assert.ErrorIs(t, err, models.ErrSeatNoLongerAvailable)

		// Nothing moved; the caller restarts from phase one
		moved, err := store.GetByCode(ticket.Code)
		require.NoError(t, err)
		assert.Equal(t, "trip-a", moved.TripID)
		assert.Equal(t, 1, store.soldCount("trip-a"))
	})

	t.Run("Destination Full", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 2)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 2)
		ticket := store.addTicket("trip-a", 1, "0712345678", "rider@example.com")
		store.addTicket("trip-b", 1, "0798765432", "other@example.com")
		store.addTicket("trip-b", 2, "0798765432", "other@example.com")
		svc := newRelocation(store, nil)

		_, err := svc.Relocate(ticket.Code, &models.RelocateRequest{DestinationTripID: "trip-b"})
		assert.ErrorIs(t, err, models.ErrInsufficientCapacity)
	})

	t.Run("Unknown Or Cancelled Ticket", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 0)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		require.NoError(t, store.Cancel(ticket.ID))
		svc := newRelocation(store, nil)

		_, err := svc.Relocate("no-such-code", &models.RelocateRequest{DestinationTripID: "trip-b"})
		assert.ErrorIs(t, err, models.ErrTicketNotFound)

		_, err = svc.Relocate(ticket.Code, &models.RelocateRequest{DestinationTripID: "trip-b"})
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("Chosen Seat Out Of Range", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 0)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		svc := newRelocation(store, nil)

		_, err := svc.Relocate(ticket.Code, &models.RelocateRequest{
			DestinationTripID: "trip-b",
			Seat:              seatPtr(9),
		})

		var invalid *models.InvalidSeatError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 9, invalid.Seat)
	})

	t.Run("Seat Change Within Same Trip", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 4)
		store.addTrip("trip-a", "bus-1", 1)
		ticket := store.addTicket("trip-a", 2, "0712345678", "rider@example.com")
		svc := newRelocation(store, nil)

		result, err := svc.Relocate(ticket.Code, &models.RelocateRequest{
			DestinationTripID: "trip-a",
			Seat:              seatPtr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, models.RelocationCommitted, result.State)
		assert.Equal(t, 4, result.Ticket.Seat())
		assert.Equal(t, 1, store.soldCount("trip-a"), "count unchanged on same trip")
	})

	t.Run("Crossing Relocations Do Not Deadlock", func(t *testing.T) {
		store := newMemStore()
		store.addVehicle("bus-1", 10)
		store.addTrip("trip-a", "bus-1", 1)
		store.addTrip("trip-b", "bus-1", 1)
		ticketA := store.addTicket("trip-a", 1, "0712345678", "a@example.com")
		ticketB := store.addTicket("trip-b", 2, "0798765432", "b@example.com")
		svc := newRelocation(store, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Relocate(ticketA.Code, &models.RelocateRequest{DestinationTripID: "trip-b"})
		}()
		go func() {
			defer wg.Done()
			svc.Relocate(ticketB.Code, &models.RelocateRequest{DestinationTripID: "trip-a"})
		}()
		wg.Wait()

		seatsA, _ := store.OccupiedSeats("trip-a")
		seatsB, _ := store.OccupiedSeats("trip-b")
		assert.Equal(t, len(seatsA), store.soldCount("trip-a"))
		assert.Equal(t, len(seatsB), store.soldCount("trip-b"))
	})
}
