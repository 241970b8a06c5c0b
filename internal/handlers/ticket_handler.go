package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
)

// TicketHandler exposes ticket lookup, relocation, cancellation and
// document delivery.
type TicketHandler struct {
	ticketService     *services.TicketService
	relocationService *services.RelocationService
	catalog           *services.TripCatalogService
	documents         *services.DocumentService
	logger            *logrus.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService *services.TicketService,
	relocationService *services.RelocationService,
	catalog *services.TripCatalogService,
	documents *services.DocumentService,
	logger *logrus.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService:     ticketService,
		relocationService: relocationService,
		catalog:           catalog,
		documents:         documents,
		logger:            logger,
	}
}

// Get handles GET /api/v1/tickets/:code
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.ticketService.GetByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Relocate handles POST /api/v1/tickets/:code/relocate. A committed result
// carries the updated ticket; a needs_seat_choice result carries the free
// seats on the destination so the caller can re-invoke with one of them.
func (h *TicketHandler) Relocate(c *gin.Context) {
	var req models.RelocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.relocationService.Relocate(c.Param("code"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Cancel handles DELETE /api/v1/tickets/:code
func (h *TicketHandler) Cancel(c *gin.Context) {
	code := c.Param("code")
	if err := h.ticketService.Cancel(code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket cancelled",
		"code":    code,
	})
}

// Resend handles POST /api/v1/tickets/:code/resend
func (h *TicketHandler) Resend(c *gin.Context) {
	code := c.Param("code")
	if err := h.ticketService.Resend(code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Ticket is being resent",
		"code":    code,
	})
}

// Download handles GET /api/v1/tickets/:code/pdf
func (h *TicketHandler) Download(c *gin.Context) {
	ticket, err := h.ticketService.GetByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	trip, err := h.catalog.GetTrip(ticket.TripID)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.documents.TicketPDF(ticket, trip)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render ticket PDF")
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ticket-%s.pdf", ticket.Code))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
