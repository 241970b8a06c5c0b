package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/middleware"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
)

// BookingHandler exposes online and counter seat purchases
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// BookOnline handles POST /api/v1/bookings
func (h *BookingHandler) BookOnline(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.bookingService.BookOnline(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// BookCounter handles POST /api/v1/counter/bookings. The acting employee
// comes from the authenticated session.
func (h *BookingHandler) BookCounter(c *gin.Context) {
	employee, ok := middleware.GetEmployeeContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "Employee session required",
		})
		return
	}

	var req models.CounterBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.bookingService.BookCounter(employee.EmployeeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
