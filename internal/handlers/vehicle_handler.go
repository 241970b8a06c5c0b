package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
)

// VehicleHandler exposes the vehicle registry
type VehicleHandler struct {
	catalog *services.TripCatalogService
	logger  *logrus.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(catalog *services.TripCatalogService, logger *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Create handles POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	vehicle, err := h.catalog.CreateVehicle(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// List handles GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.catalog.ListVehicles()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// UpdateCapacity handles PATCH /api/v1/vehicles/:id/capacity
func (h *VehicleHandler) UpdateCapacity(c *gin.Context) {
	vehicleID := c.Param("id")

	var req models.UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "capacity must be a positive integer",
		})
		return
	}

	vehicle, err := h.catalog.UpdateVehicleCapacity(vehicleID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
