// Package services: services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gaittrib/logger"
	"gaittrib/models"
)

// PlatformFeePaise is the fixed platform cut per order, capped at the
// order amount for cheap events.
const PlatformFeePaise int64 = 1500

// PaymentServiceInterface creates gateway orders for approved
// registrations and reconciles asynchronous capture notifications.
type PaymentServiceInterface interface {
	EnsureOrder(registrationID string) (*models.Payment, error)
	ReconcileCapture(orderID string) (*models.Payment, error)
	GatewayKeyID() string
}

// PaymentService is the reconciler between our rows and the external
// gateway. The gateway handle is injected; its lifecycle belongs to main.
type PaymentService struct {
	db      *gorm.DB
	gateway PaymentGateway
}

// NewPaymentService creates a PaymentService around the given gateway.
func NewPaymentService(db *gorm.DB, gateway PaymentGateway) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

// EnsureOrder returns the registration's payment order, creating it on
// first call. Creation requires status APPROVED; a pre-existing Payment is
// returned unchanged regardless of current status. The gateway call runs
// before any write, so a failed order creation persists nothing.
func (s *PaymentService) EnsureOrder(registrationID string) (*models.Payment, error) {
	var existing models.Payment
	err := s.db.Where("registration_id = ?", registrationID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var registration models.Registration
	err = s.db.Preload("Event").First(&registration, "id = ?", registrationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration %s: %w", registrationID, ErrNotFound)
		}
		return nil, err
	}
	if registration.Status != models.RegistrationApproved {
		logger.Warn.Printf("EnsureOrder: registration %s is %s, not APPROVED", registrationID, registration.Status)
		return nil, ErrStateConflict
	}

	amount := registration.Event.PriceRupees * 100
	platformFee := PlatformFeePaise
	if amount < platformFee {
		platformFee = amount
	}
	organizerAmount := amount - platformFee
	if organizerAmount < 0 {
		organizerAmount = 0
	}

	orderID, err := s.gateway.CreateOrder(amount, registration.ID, map[string]interface{}{
		"registrationId": registration.ID,
		"eventId":        registration.EventID,
	})
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		RegistrationID:  registrationID,
		OrderID:         orderID,
		Amount:          amount,
		PlatformFee:     platformFee,
		OrganizerAmount: organizerAmount,
		Status:          models.PaymentCreated,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	logger.Info.Printf("EnsureOrder: created order %s for registration %s (amount %d paise)",
		orderID, registrationID, amount)
	return &payment, nil
}

// ReconcileCapture records a successful capture reported by the gateway.
// It is the only path that sets a registration CONFIRMED, and it is safe
// to replay: a payment that is already PAID is left untouched. Marking the
// payment and confirming the registration happen in one transaction so
// neither state is ever visible without the other.
func (s *PaymentService) ReconcileCapture(orderID string) (*models.Payment, error) {
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}

		if payment.Status == models.PaymentPaid {
			// duplicate delivery from the gateway
			logger.Debug.Printf("ReconcileCapture: order %s already PAID, no-op", orderID)
			return nil
		}

		if err := tx.Model(&payment).Update("status", models.PaymentPaid).Error; err != nil {
			return err
		}
		payment.Status = models.PaymentPaid

		now := time.Now()
		return tx.Model(&models.Registration{}).
			Where("id = ?", payment.RegistrationID).
			Updates(map[string]interface{}{
				"status":  models.RegistrationConfirmed,
				"paid_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("ReconcileCapture: order %s PAID, registration %s CONFIRMED",
		orderID, payment.RegistrationID)
	return &payment, nil
}

// GatewayKeyID exposes the public key the hosted checkout widget needs.
func (s *PaymentService) GatewayKeyID() string {
	return s.gateway.KeyID()
}
