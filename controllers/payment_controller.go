// Package controllers controllers/payment_controller.go
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/models"
	"gaittrib/services"
)

// PaymentController exposes the order-creation API the checkout widget
// calls and the webhook endpoint the gateway notifies.
type PaymentController struct {
	Registrations services.RegistrationServiceInterface
	Payments      services.PaymentServiceInterface
	WebhookSecret string
}

// NewPaymentController creates a PaymentController.
func NewPaymentController(registrations services.RegistrationServiceInterface, payments services.PaymentServiceInterface, webhookSecret string) *PaymentController {
	return &PaymentController{
		Registrations: registrations,
		Payments:      payments,
		WebhookSecret: webhookSecret,
	}
}

// ------------------ order creation ------------------

type createOrderRequest struct {
	RegistrationID string `json:"registrationId"`
}

// CreateOrder returns the gateway order for the caller's approved
// registration, creating it on first call. Runs behind APIAuthRequired.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RegistrationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "registrationId is required"})
		return
	}

	registration, err := pc.Registrations.Get(req.RegistrationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}
	// a registration that is not yours does not exist, as far as you know
	if registration.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	if registration.Status != models.RegistrationApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration is not approved"})
		return
	}

	payment, err := pc.Payments.EnsureOrder(req.RegistrationID)
	if err != nil {
		logger.Error.Printf("CreateOrder: registration %s: %v", req.RegistrationID, err)
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": payment.OrderID,
		"amount":  payment.Amount,
		"keyId":   pc.Payments.GatewayKeyID(),
		"status":  payment.Status,
	})
}

// ------------------ gateway webhook ------------------

// webhookPayload is the slice of the gateway notification we act on.
type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook handles asynchronous gateway notifications. The signature is
// verified over the raw bytes before anything is parsed; only
// payment.captured has side effects, and replays are harmless because the
// reconciler treats an already-PAID order as a no-op.
func (pc *PaymentController) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !services.VerifyWebhookSignature(body, signature, pc.WebhookSecret) {
		logger.Warn.Println("Webhook: invalid signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	if payload.Event != "payment.captured" {
		// neutral acknowledgement, no side effects
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	orderID := payload.Payload.Payment.Entity.OrderID
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order id"})
		return
	}

	if _, err := pc.Payments.ReconcileCapture(orderID); err != nil {
		logger.Error.Printf("Webhook: reconcile order %s: %v", orderID, err)
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
