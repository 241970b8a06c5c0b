package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// respondError maps service errors onto HTTP responses. Typed errors carry
// enough detail for the client to act; everything else is a 500.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"field":   validationErr.Field,
			"message": validationErr.Reason,
		})
		return
	}

	var invalidSeat *models.InvalidSeatError
	if errors.As(err, &invalidSeat) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "invalid_seat",
			"seat":     invalidSeat.Seat,
			"capacity": invalidSeat.Capacity,
			"message":  invalidSeat.Error(),
		})
		return
	}

	var unavailable *models.SeatUnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "seats_unavailable",
			"seats":   unavailable.Seats,
			"message": unavailable.Error(),
		})
		return
	}

	var partial *models.PartialBookingError
	if errors.As(err, &partial) {
		// The issued tickets are durable; the client must not retry them
		c.JSON(http.StatusConflict, gin.H{
			"error":        "partial_booking",
			"issued":       partial.Issued,
			"failed_seats": partial.FailedSeats,
			"message":      partial.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrVehicleNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, models.ErrInsufficientCapacity),
		errors.Is(err, models.ErrSeatNoLongerAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	case errors.Is(err, models.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment_declined", "message": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Something went wrong"})
	}
}
