package services

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

const (
	waitTimeout = 2 * time.Second
	waitTick    = 10 * time.Millisecond
)

// memStore is an in-memory implementation of the store interfaces. It lets
// the service tests exercise real interleavings (locking, partial failures,
// sold count drift) without a database.
type memStore struct {
	mu        sync.Mutex
	trips     map[string]*models.Trip
	vehicles  map[string]*models.Vehicle
	tickets   map[string]*models.Ticket
	customers map[string]*models.Customer
	employees map[string]*models.Employee

	// failCreatesAfter makes ticket Create fail once this many inserts have
	// succeeded. Negative disables the failure.
	failCreatesAfter int
}

func newMemStore() *memStore {
	return &memStore{
		trips:            make(map[string]*models.Trip),
		vehicles:         make(map[string]*models.Vehicle),
		tickets:          make(map[string]*models.Ticket),
		customers:        make(map[string]*models.Customer),
		employees:        make(map[string]*models.Employee),
		failCreatesAfter: -1,
	}
}

func (m *memStore) addVehicle(id string, capacity int) *models.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &models.Vehicle{ID: id, Capacity: capacity, RouteLabel: "Colombo-Kandy"}
	m.vehicles[id] = v
	return v
}

func (m *memStore) addTrip(id, vehicleID string, soldCount int) *models.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &models.Trip{
		ID:          id,
		TripDate:    time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		DepartureAt: time.Date(2026, 9, 20, 8, 30, 0, 0, time.UTC),
		Origin:      "Colombo",
		Destination: "Kandy",
		Price:       1500,
		VehicleID:   vehicleID,
		SoldCount:   soldCount,
	}
	m.trips[id] = t
	return t
}

func (m *memStore) addTicket(tripID string, seat int, phone, email string) *models.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	seatNumber := seat
	t := &models.Ticket{
		ID:         fmt.Sprintf("ticket-%s-%d", tripID, seat),
		Code:       fmt.Sprintf("code-%s-%d", tripID, seat),
		TripID:     tripID,
		SeatNumber: &seatNumber,
		TravelDate: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		IssuedAt:   time.Now(),
		Phone:      phone,
		Email:      email,
		Price:      1500,
	}
	m.tickets[t.ID] = t
	return t
}

// TripStore

func (m *memStore) GetByID(tripID string) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripID]
	if !ok {
		return nil, models.ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (m *memStore) UpdateSoldCount(tripID string, soldCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripID]
	if !ok {
		return models.ErrTripNotFound
	}
	trip.SoldCount = soldCount
	return nil
}

func (m *memStore) ListIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []string{}
	for id := range m.trips {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) soldCount(tripID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trips[tripID].SoldCount
}

// vehicleStore wraps memStore because VehicleStore and TripStore share the
// GetByID method name with different types
type vehicleStore struct {
	m *memStore
}

func (v vehicleStore) GetByID(vehicleID string) (*models.Vehicle, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	vehicle, ok := v.m.vehicles[vehicleID]
	if !ok {
		return nil, models.ErrVehicleNotFound
	}
	copied := *vehicle
	return &copied, nil
}

// employeeStore wraps memStore for the same reason
type employeeStore struct {
	m *memStore
}

func (e employeeStore) GetByID(employeeID string) (*models.Employee, error) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	employee, ok := e.m.employees[employeeID]
	if !ok {
		return nil, models.ErrEmployeeNotFound
	}
	copied := *employee
	return &copied, nil
}

func (e employeeStore) GetByUsername(username string) (*models.Employee, error) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	for _, employee := range e.m.employees {
		if employee.Username == username {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, models.ErrEmployeeNotFound
}

// TicketStore

func (m *memStore) Create(ticket *models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreatesAfter == 0 {
		return fmt.Errorf("simulated insert failure")
	}
	if m.failCreatesAfter > 0 {
		m.failCreatesAfter--
	}
	copied := *ticket
	m.tickets[ticket.ID] = &copied
	return nil
}

func (m *memStore) GetByCode(code string) (*models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ticket := range m.tickets {
		if ticket.Code == code {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, models.ErrTicketNotFound
}

func (m *memStore) OccupiedSeats(tripID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seats := []int{}
	for _, ticket := range m.tickets {
		if ticket.TripID == tripID && !ticket.Cancelled && ticket.SeatNumber != nil {
			seats = append(seats, *ticket.SeatNumber)
		}
	}
	return seats, nil
}

func (m *memStore) Relocate(ticketID, newCode, newTripID string, newTravelDate time.Time, newSeat int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[ticketID]
	if !ok || ticket.Cancelled {
		return models.ErrTicketNotFound
	}
	seat := newSeat
	ticket.Code = newCode
	ticket.TripID = newTripID
	ticket.TravelDate = newTravelDate
	ticket.SeatNumber = &seat
	return nil
}

func (m *memStore) Cancel(ticketID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[ticketID]
	if !ok || ticket.Cancelled {
		return models.ErrTicketNotFound
	}
	now := time.Now()
	ticket.Cancelled = true
	ticket.CancelledAt = &now
	return nil
}

// CustomerStore

func (m *memStore) GetByPhone(phone string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, ok := m.customers[phone]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

func (m *memStore) GetOrCreate(phone, email string) (*models.Customer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if customer, ok := m.customers[phone]; ok {
		copied := *customer
		return &copied, false, nil
	}
	customer := &models.Customer{Phone: phone, Email: email}
	m.customers[phone] = customer
	copied := *customer
	return &copied, true, nil
}

// fakeNotifier records deliveries
type fakeNotifier struct {
	mu        sync.Mutex
	issued    int
	relocated int
}

func (f *fakeNotifier) TicketIssued(ticket *models.Ticket, trip *models.Trip, viaSMS bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
}

func (f *fakeNotifier) TicketRelocated(ticket *models.Ticket, trip *models.Trip) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relocated++
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
