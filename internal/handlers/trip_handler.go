package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
)

// TripHandler exposes the schedule and per-trip seat availability
type TripHandler struct {
	catalog      *services.TripCatalogService
	availability *services.AvailabilityService
	logger       *logrus.Logger
}

// NewTripHandler creates a new trip handler
func NewTripHandler(
	catalog *services.TripCatalogService,
	availability *services.AvailabilityService,
	logger *logrus.Logger,
) *TripHandler {
	return &TripHandler{
		catalog:      catalog,
		availability: availability,
		logger:       logger,
	}
}

// Create handles POST /api/v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	trip, err := h.catalog.CreateTrip(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// List handles GET /api/v1/trips. With origin, destination and date query
// parameters it searches; without them it lists upcoming trips.
func (h *TripHandler) List(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	tripDate := c.Query("date")

	var (
		trips []models.Trip
		err   error
	)
	if origin != "" || destination != "" || tripDate != "" {
		trips, err = h.catalog.SearchTrips(origin, destination, tripDate)
	} else {
		trips, err = h.catalog.ListUpcomingTrips()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

// Get handles GET /api/v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.catalog.GetTrip(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// FreeSeats handles GET /api/v1/trips/:id/seats
func (h *TripHandler) FreeSeats(c *gin.Context) {
	tripID := c.Param("id")

	seats, err := h.availability.FreeSeats(tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip_id":    tripID,
		"free_seats": seats,
		"free_count": len(seats),
	})
}

// FreeSeatCount handles GET /api/v1/trips/:id/seats/count
func (h *TripHandler) FreeSeatCount(c *gin.Context) {
	tripID := c.Param("id")

	count, err := h.availability.FreeSeatCount(tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip_id":    tripID,
		"free_count": count,
	})
}
