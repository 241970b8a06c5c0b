package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/database"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// TripCatalogService manages the fleet and schedule: vehicles and the trips
// they serve. Seat inventory questions belong to AvailabilityService.
type TripCatalogService struct {
	trips    *database.TripRepository
	vehicles *database.VehicleRepository
	tickets  TicketStore
	logger   *logrus.Logger
}

// NewTripCatalogService creates a new TripCatalogService
func NewTripCatalogService(
	trips *database.TripRepository,
	vehicles *database.VehicleRepository,
	tickets TicketStore,
	logger *logrus.Logger,
) *TripCatalogService {
	return &TripCatalogService{
		trips:    trips,
		vehicles: vehicles,
		tickets:  tickets,
		logger:   logger,
	}
}

// CreateVehicle registers a new vehicle in the fleet
func (s *TripCatalogService) CreateVehicle(req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, &models.ValidationError{Field: "capacity", Reason: err.Error()}
	}

	vehicle := &models.Vehicle{
		ID:         uuid.New().String(),
		Capacity:   req.Capacity,
		RouteLabel: req.RouteLabel,
	}

	if err := s.vehicles.Create(vehicle); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"vehicle_id": vehicle.ID,
		"capacity":   vehicle.Capacity,
	}).Info("Vehicle registered")

	return vehicle, nil
}

// ListVehicles returns all registered vehicles
func (s *TripCatalogService) ListVehicles() ([]models.Vehicle, error) {
	return s.vehicles.List()
}

// UpdateVehicleCapacity changes a vehicle's capacity. Shrinking below a seat
// number already sold on any of the vehicle's trips would strand passengers,
// so the new capacity must cover the highest occupied seat.
func (s *TripCatalogService) UpdateVehicleCapacity(vehicleID string, req *models.UpdateCapacityRequest) (*models.Vehicle, error) {
	if req.Capacity <= 0 {
		return nil, &models.ValidationError{Field: "capacity", Reason: "capacity must be a positive integer"}
	}

	vehicle, err := s.vehicles.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Capacity < vehicle.Capacity {
		highest, err := s.highestOccupiedSeat(vehicleID)
		if err != nil {
			return nil, err
		}
		if req.Capacity < highest {
			return nil, &models.ValidationError{
				Field:  "capacity",
				Reason: "capacity cannot shrink below an already sold seat number",
			}
		}
	}

	if err := s.vehicles.UpdateCapacity(vehicleID, req.Capacity); err != nil {
		return nil, err
	}

	vehicle.Capacity = req.Capacity
	return vehicle, nil
}

// highestOccupiedSeat scans the vehicle's trips for the largest sold seat number
func (s *TripCatalogService) highestOccupiedSeat(vehicleID string) (int, error) {
	ids, err := s.trips.ListIDs()
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, tripID := range ids {
		trip, err := s.trips.GetByID(tripID)
		if err != nil {
			return 0, err
		}
		if trip.VehicleID != vehicleID {
			continue
		}

		seats, err := s.tickets.OccupiedSeats(tripID)
		if err != nil {
			return 0, err
		}
		for _, seat := range seats {
			if seat > highest {
				highest = seat
			}
		}
	}

	return highest, nil
}

// CreateTrip schedules a new trip on a vehicle
func (s *TripCatalogService) CreateTrip(req *models.CreateTripRequest) (*models.Trip, error) {
	if err := req.Validate(); err != nil {
		return nil, &models.ValidationError{Field: "trip", Reason: err.Error()}
	}

	if _, err := s.vehicles.GetByID(req.VehicleID); err != nil {
		return nil, err
	}

	tripDate, _ := time.Parse("2006-01-02", req.TripDate)
	departureAt, _ := time.Parse(time.RFC3339, req.DepartureAt)

	trip := &models.Trip{
		ID:          uuid.New().String(),
		TripDate:    tripDate,
		DepartureAt: departureAt,
		Origin:      req.Origin,
		Destination: req.Destination,
		Price:       req.Price,
		VehicleID:   req.VehicleID,
		SoldCount:   0,
	}

	if err := s.trips.Create(trip); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"trip_id":    trip.ID,
		"origin":     trip.Origin,
		"vehicle_id": trip.VehicleID,
	}).Info("Trip scheduled")

	return trip, nil
}

// GetTrip retrieves a trip by ID
func (s *TripCatalogService) GetTrip(tripID string) (*models.Trip, error) {
	return s.trips.GetByID(tripID)
}

// SearchTrips finds trips by origin, destination and travel date
func (s *TripCatalogService) SearchTrips(origin, destination, tripDate string) ([]models.Trip, error) {
	date, err := time.Parse("2006-01-02", tripDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "trip_date", Reason: "trip_date must be in YYYY-MM-DD format"}
	}

	return s.trips.Search(origin, destination, date)
}

// ListUpcomingTrips lists trips that have not yet departed
func (s *TripCatalogService) ListUpcomingTrips() ([]models.Trip, error) {
	return s.trips.ListUpcoming(time.Now())
}
