// Package services file: services/gateway.go
package services

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"gaittrib/config"
	"gaittrib/logger"
)

// ------------------- payment gateway -------------------

// PaymentGateway creates hosted-checkout orders with the external payment
// provider. Implementations must be safe for concurrent use; the single
// instance is constructed in main and injected into the payment service.
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount (minor units)
	// and returns the gateway's order identifier.
	CreateOrder(amount int64, receipt string, notes map[string]interface{}) (string, error)

	// KeyID returns the public key the browser checkout widget needs.
	KeyID() string
}

// NewPaymentGateway picks the gateway implementation from configuration:
// real Razorpay when credentials are present, deterministic mock orders
// otherwise.
func NewPaymentGateway(cfg config.Config) PaymentGateway {
	if cfg.GatewayConfigured() {
		logger.Info.Println("Payment gateway: razorpay")
		return &RazorpayGateway{
			client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
			keyID:  cfg.RazorpayKeyID,
		}
	}
	logger.Warn.Println("Payment gateway: RAZORPAY_KEY_ID/SECRET not set, using mock orders")
	return &MockGateway{}
}

// -------------------- razorpay gateway --------------------

// RazorpayGateway creates orders through the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func (g *RazorpayGateway) CreateOrder(amount int64, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
		"notes":    notes,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create: response missing order id")
	}
	return orderID, nil
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// ---------------------- mock gateway ----------------------

// MockGateway synthesizes deterministic order ids for environments without
// gateway credentials. The id is derived from the receipt so repeated
// calls for the same registration agree.
type MockGateway struct{}

func (g *MockGateway) CreateOrder(amount int64, receipt string, notes map[string]interface{}) (string, error) {
	return "mock_" + receipt, nil
}

func (g *MockGateway) KeyID() string {
	return ""
}
