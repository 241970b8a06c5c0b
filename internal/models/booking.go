package models

// PaymentMethodType identifies a supported payment instrument
type PaymentMethodType string

const (
	PaymentMethodCard   PaymentMethodType = "card"
	PaymentMethodPayPal PaymentMethodType = "paypal"
)

// PaymentMethod describes the instrument used for an online purchase.
// Counter sales carry no payment method; cash is settled at the desk.
type PaymentMethod struct {
	Type        PaymentMethodType `json:"type" binding:"required"`
	CardNumber  string            `json:"card_number,omitempty"`
	Expiry      string            `json:"expiry,omitempty"` // MM/YY
	CVV         string            `json:"cvv,omitempty"`
	PayPalEmail string            `json:"paypal_email,omitempty"`
}

// BookingRequest represents an online (self-service) purchase of one or more
// specific seats on a trip.
type BookingRequest struct {
	TripID    string         `json:"trip_id" binding:"required"`
	Seats     []int          `json:"seats" binding:"required,min=1"`
	Phone     string         `json:"phone" binding:"required"`
	Email     string         `json:"email" binding:"required"`
	NotifySMS bool           `json:"notify_sms"`
	Payment   *PaymentMethod `json:"payment" binding:"required"`
}

// CounterBookingRequest represents a sale made by an employee at the counter.
// The acting employee id comes from the authenticated session, not the body.
type CounterBookingRequest struct {
	TripID string `json:"trip_id" binding:"required"`
	Seats  []int  `json:"seats" binding:"required,min=1"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
}

// IssuedTicket is one successfully issued seat within a booking.
type IssuedTicket struct {
	TicketID   string `json:"ticket_id"`
	SeatNumber int    `json:"seat_number"`
	Code       string `json:"code"`
}

// BookingResult reports the outcome of a successful booking.
type BookingResult struct {
	TripID  string         `json:"trip_id"`
	Tickets []IssuedTicket `json:"tickets"`
}

// RelocationState is the state a relocation request ended in.
type RelocationState string

const (
	// RelocationCommitted means the ticket now lives on the destination trip.
	RelocationCommitted RelocationState = "committed"
	// RelocationNeedsSeatChoice means the ticket's seat is taken on the
	// destination trip; the caller must re-invoke with one of FreeSeats.
	RelocationNeedsSeatChoice RelocationState = "needs_seat_choice"
)

// RelocationResult is the typed outcome of a relocation. A NeedsSeatChoice
// result is not an error: it is a request for a second input.
type RelocationResult struct {
	State     RelocationState `json:"state"`
	FreeSeats []int           `json:"free_seats,omitempty"`
	Ticket    *Ticket         `json:"ticket,omitempty"`
}

// RelocateRequest is the caller-facing payload for both relocation phases.
type RelocateRequest struct {
	DestinationTripID string `json:"destination_trip_id" binding:"required"`
	Seat              *int   `json:"seat,omitempty"`
}
