package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Gateway sends SMS messages
type Gateway interface {
	Send(phone, message string) error
	GetName() string
}

// HTTPGatewayConfig holds configuration for the HTTP SMS gateway
type HTTPGatewayConfig struct {
	APIURL string
	APIKey string
	Sender string
}

// HTTPGateway sends SMS through a JSON-over-HTTP provider API
type HTTPGateway struct {
	apiURL string
	apiKey string
	sender string
	client *http.Client
}

// NewHTTPGateway creates a new HTTP SMS gateway client
func NewHTTPGateway(config HTTPGatewayConfig) *HTTPGateway {
	return &HTTPGateway{
		apiURL: config.APIURL,
		apiKey: config.APIKey,
		sender: config.Sender,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type sendResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	ErrCode string `json:"errCode"`
}

// Send delivers a single SMS
func (g *HTTPGateway) Send(phone, message string) error {
	payload := sendRequest{
		To:      phone,
		From:    g.sender,
		Message: message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/sms", g.apiURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %w", err)
	}

	var sendResp sendResponse
	if err := json.Unmarshal(body, &sendResp); err != nil {
		return fmt.Errorf("failed to parse SMS response: %w", err)
	}

	if sendResp.Status != "success" {
		return fmt.Errorf("SMS sending failed: %s (error code: %s)", sendResp.Comment, sendResp.ErrCode)
	}

	return nil
}

// GetName returns the name of this SMS gateway
func (g *HTTPGateway) GetName() string {
	return "HTTP SMS Gateway"
}

// DevGateway logs messages instead of sending them. Used outside production.
type DevGateway struct {
	logger *logrus.Logger
}

// NewDevGateway creates a gateway that only logs
func NewDevGateway(logger *logrus.Logger) *DevGateway {
	return &DevGateway{logger: logger}
}

// Send logs the message
func (g *DevGateway) Send(phone, message string) error {
	g.logger.WithFields(logrus.Fields{
		"phone":   phone,
		"message": message,
	}).Info("DEV MODE: SMS not sent")
	return nil
}

// GetName returns the name of this SMS gateway
func (g *DevGateway) GetName() string {
	return "Dev SMS Gateway"
}
