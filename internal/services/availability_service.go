package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// AvailabilityService answers seat availability questions for a trip.
//
// The cached sold count on a trip can drift from the ticket table (crashes
// between writes, manual data fixes). Every read here recomputes the count
// from the non-cancelled tickets and writes the correction back, so the cache
// converges to the truth instead of accumulating error.
type AvailabilityService struct {
	trips    TripStore
	vehicles VehicleStore
	tickets  TicketStore
	locks    *tripLocks
	logger   *logrus.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(trips TripStore, vehicles VehicleStore, tickets TicketStore, logger *logrus.Logger) *AvailabilityService {
	return &AvailabilityService{
		trips:    trips,
		vehicles: vehicles,
		tickets:  tickets,
		locks:    newTripLocks(),
		logger:   logger,
	}
}

// tripSnapshot is a consistent view of one trip's inventory
type tripSnapshot struct {
	trip     *models.Trip
	vehicle  *models.Vehicle
	occupied map[int]bool
}

// freeSeatCount returns how many seats remain sellable
func (s *tripSnapshot) freeSeatCount() int {
	return s.vehicle.Capacity - len(s.occupied)
}

// freeSeats returns the unsold seat numbers in ascending order
func (s *tripSnapshot) freeSeats() []int {
	seats := []int{}
	for seat := 1; seat <= s.vehicle.Capacity; seat++ {
		if !s.occupied[seat] {
			seats = append(seats, seat)
		}
	}
	return seats
}

// FreeSeats returns the seat numbers still available on a trip
func (s *AvailabilityService) FreeSeats(tripID string) ([]int, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	snapshot, err := s.snapshot(tripID)
	if err != nil {
		return nil, err
	}
	return snapshot.freeSeats(), nil
}

// FreeSeatCount returns the number of seats still available on a trip
func (s *AvailabilityService) FreeSeatCount(tripID string) (int, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	snapshot, err := s.snapshot(tripID)
	if err != nil {
		return 0, err
	}
	return snapshot.freeSeatCount(), nil
}

// snapshot loads a trip's inventory and repairs the cached sold count if it
// disagrees with the ticket table. Callers must hold the trip's lock.
func (s *AvailabilityService) snapshot(tripID string) (*tripSnapshot, error) {
	trip, err := s.trips.GetByID(tripID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(trip.VehicleID)
	if err != nil {
		if err == models.ErrVehicleNotFound {
			return nil, fmt.Errorf("trip %s references missing vehicle %s: %w", trip.ID, trip.VehicleID, err)
		}
		return nil, err
	}

	seats, err := s.tickets.OccupiedSeats(tripID)
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]bool, len(seats))
	for _, seat := range seats {
		occupied[seat] = true
	}

	if trip.SoldCount != len(occupied) {
		s.logger.WithFields(logrus.Fields{
			"trip_id": tripID,
			"cached":  trip.SoldCount,
			"actual":  len(occupied),
		}).Warn("Sold count drift detected, repairing")

		if err := s.trips.UpdateSoldCount(tripID, len(occupied)); err != nil {
			return nil, fmt.Errorf("failed to repair sold count: %w", err)
		}
		trip.SoldCount = len(occupied)
	}

	return &tripSnapshot{trip: trip, vehicle: vehicle, occupied: occupied}, nil
}

// lockTrip exposes the per-trip lock to sibling services that mutate seats
func (s *AvailabilityService) lockTrip(tripID string) func() {
	return s.locks.lock(tripID)
}

// lockTripPair exposes ordered two-trip locking for relocations
func (s *AvailabilityService) lockTripPair(tripA, tripB string) func() {
	return s.locks.lockPair(tripA, tripB)
}
