package services

import (
	"github.com/sirupsen/logrus"
)

// RepairService reconciles every trip's cached sold count against its ticket
// table. Individual reads already self-heal the trips they touch; the sweep
// catches trips nobody has read since the drift appeared.
type RepairService struct {
	trips        TripStore
	availability *AvailabilityService
	logger       *logrus.Logger
}

// NewRepairService creates a new RepairService
func NewRepairService(trips TripStore, availability *AvailabilityService, logger *logrus.Logger) *RepairService {
	return &RepairService{
		trips:        trips,
		availability: availability,
		logger:       logger,
	}
}

// RepairTrip reconciles one trip. Returns true if the count was corrected.
func (s *RepairService) RepairTrip(tripID string) (bool, error) {
	unlock := s.availability.lockTrip(tripID)
	defer unlock()

	trip, err := s.trips.GetByID(tripID)
	if err != nil {
		return false, err
	}
	before := trip.SoldCount

	snapshot, err := s.availability.snapshot(tripID)
	if err != nil {
		return false, err
	}

	return snapshot.trip.SoldCount != before, nil
}

// SweepAll reconciles every trip, returning how many needed correction.
// Trips that fail to reconcile are logged and skipped so one bad row cannot
// stall the whole sweep.
func (s *RepairService) SweepAll() (int, error) {
	ids, err := s.trips.ListIDs()
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, tripID := range ids {
		changed, err := s.RepairTrip(tripID)
		if err != nil {
			s.logger.WithField("trip_id", tripID).WithError(err).Error("Failed to reconcile trip")
			continue
		}
		if changed {
			repaired++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"trips":    len(ids),
		"repaired": repaired,
	}).Info("Sold count sweep completed")

	return repaired, nil
}
