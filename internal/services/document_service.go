package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/yeqown/go-qrcode"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

// DocumentService renders the passenger-facing ticket artifacts: a PDF with
// the travel details and a QR code encoding the redemption code.
type DocumentService struct{}

// NewDocumentService creates a new DocumentService
func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

// TicketQR renders the ticket's redemption code as a scannable image
func (s *DocumentService) TicketQR(ticket *models.Ticket) ([]byte, error) {
	qrc, err := qrcode.New(ticket.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return buf.Bytes(), nil
}

// TicketPDF renders the printable ticket document
func (s *DocumentService) TicketPDF(ticket *models.Ticket, trip *models.Trip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Route        : %s -> %s", trip.Origin, trip.Destination),
		fmt.Sprintf("Travel Date  : %s", ticket.TravelDate.Format("2006-01-02")),
		fmt.Sprintf("Departure    : %s", trip.DepartureAt.Format("15:04")),
		fmt.Sprintf("Seat         : %d", ticket.Seat()),
		fmt.Sprintf("Price        : %.2f LKR", ticket.Price),
		fmt.Sprintf("Ticket Code  : %s", ticket.Code),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	qrBytes, err := s.TicketQR(ticket)
	if err != nil {
		return nil, err
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "jpeg"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("qr", 145, 20, 45, 0, false, gofpdf.ImageOptions{ImageType: "jpeg"}, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This ticket admits one passenger to the seat shown above. Present the QR code when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket pdf: %w", err)
	}

	return buf.Bytes(), nil
}
