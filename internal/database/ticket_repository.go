package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// TicketRepository handles database operations for tickets
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a newly issued ticket
func (r *TicketRepository) Create(ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, code, trip_id, seat_number, travel_date, issued_at,
			employee_id, phone, email, price, cancelled
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		ticket.ID, ticket.Code, ticket.TripID, ticket.SeatNumber, ticket.TravelDate,
		ticket.IssuedAt, ticket.EmployeeID, ticket.Phone, ticket.Email,
		ticket.Price, ticket.Cancelled,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// GetByCode retrieves a ticket by its redemption code
func (r *TicketRepository) GetByCode(code string) (*models.Ticket, error) {
	query := `
		SELECT
			id, code, trip_id, seat_number, travel_date, issued_at,
			employee_id, phone, email, price, cancelled, cancelled_at,
			created_at, updated_at
		FROM tickets
		WHERE code = $1
	`

	return r.scanTicket(r.db.QueryRow(query, code))
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ticketID string) (*models.Ticket, error) {
	query := `
		SELECT
			id, code, trip_id, seat_number, travel_date, issued_at,
			employee_id, phone, email, price, cancelled, cancelled_at,
			created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	return r.scanTicket(r.db.QueryRow(query, ticketID))
}

// ListByTrip retrieves all non-cancelled tickets on a trip
func (r *TicketRepository) ListByTrip(tripID string) ([]models.Ticket, error) {
	query := `
		SELECT
			id, code, trip_id, seat_number, travel_date, issued_at,
			employee_id, phone, email, price, cancelled, cancelled_at,
			created_at, updated_at
		FROM tickets
		WHERE trip_id = $1 AND cancelled = FALSE
		ORDER BY seat_number ASC
	`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		var ticket models.Ticket
		var seatNumber sql.NullInt64
		var employeeID sql.NullString
		var cancelledAt sql.NullTime

		err := rows.Scan(
			&ticket.ID, &ticket.Code, &ticket.TripID, &seatNumber, &ticket.TravelDate,
			&ticket.IssuedAt, &employeeID, &ticket.Phone, &ticket.Email,
			&ticket.Price, &ticket.Cancelled, &cancelledAt,
			&ticket.CreatedAt, &ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		applyNullables(&ticket, seatNumber, employeeID, cancelledAt)
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

// OccupiedSeats retrieves the seat numbers held by non-cancelled tickets on a
// trip. This set is the ground truth the cached sold count is repaired from.
func (r *TicketRepository) OccupiedSeats(tripID string) ([]int, error) {
	query := `
		SELECT seat_number
		FROM tickets
		WHERE trip_id = $1 AND cancelled = FALSE AND seat_number IS NOT NULL
		ORDER BY seat_number ASC
	`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch occupied seats: %w", err)
	}
	defer rows.Close()

	seats := []int{}
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// Relocate moves a ticket onto a new trip with a fresh code. The old code
// stops resolving the moment this commits.
func (r *TicketRepository) Relocate(ticketID, newCode, newTripID string, newTravelDate time.Time, newSeat int) error {
	query := `
		UPDATE tickets
		SET code = $1, trip_id = $2, travel_date = $3, seat_number = $4, updated_at = NOW()
		WHERE id = $5 AND cancelled = FALSE
	`

	result, err := r.db.Exec(query, newCode, newTripID, newTravelDate, newSeat, ticketID)
	if err != nil {
		return fmt.Errorf("failed to relocate ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrTicketNotFound
	}

	return nil
}

// Cancel marks a ticket cancelled, releasing its seat
func (r *TicketRepository) Cancel(ticketID string) error {
	query := `
		UPDATE tickets
		SET cancelled = TRUE, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND cancelled = FALSE
	`

	result, err := r.db.Exec(query, ticketID)
	if err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepository) scanTicket(row *sql.Row) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	var seatNumber sql.NullInt64
	var employeeID sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&ticket.ID, &ticket.Code, &ticket.TripID, &seatNumber, &ticket.TravelDate,
		&ticket.IssuedAt, &employeeID, &ticket.Phone, &ticket.Email,
		&ticket.Price, &ticket.Cancelled, &cancelledAt,
		&ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}

	applyNullables(ticket, seatNumber, employeeID, cancelledAt)
	return ticket, nil
}

// applyNullables converts sql.Null* columns to the model's pointer fields
func applyNullables(ticket *models.Ticket, seatNumber sql.NullInt64, employeeID sql.NullString, cancelledAt sql.NullTime) {
	if seatNumber.Valid {
		seat := int(seatNumber.Int64)
		ticket.SeatNumber = &seat
	}
	if employeeID.Valid {
		ticket.EmployeeID = &employeeID.String
	}
	if cancelledAt.Valid {
		ticket.CancelledAt = &cancelledAt.Time
	}
}
