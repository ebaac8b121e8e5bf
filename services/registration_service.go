// Package services: services/registration_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gaittrib/logger"
	"gaittrib/models"
)

// AnswerInput is one submitted answer keyed by the question it belongs to.
type AnswerInput struct {
	QuestionID string
	Answer     string
}

// RegistrationServiceInterface drives a registration through its lifecycle.
type RegistrationServiceInterface interface {
	Register(userID, eventID string, answers []AnswerInput) (*models.Registration, error)
	Decide(registrationID string, decision models.RegistrationStatus) (*models.Registration, error)
	Get(registrationID string) (*models.Registration, error)
	ListForUser(userID string) ([]models.Registration, error)
	ListAll() ([]models.Registration, error)
}

// RegistrationService implements the lifecycle over the relational store.
// Approval hands off to the payment service to materialize an order.
type RegistrationService struct {
	db       *gorm.DB
	payments PaymentServiceInterface
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(db *gorm.DB, payments PaymentServiceInterface) *RegistrationService {
	return &RegistrationService{db: db, payments: payments}
}

// Register validates and persists a user's claim on an event slot.
// The admission check and the registration write run in one transaction;
// on postgres the event row is locked so the capacity count cannot move
// between check and write. Capacity counts every registration row
// regardless of status: a slot is reserved at request time, not at payment
// time. Re-registering resets the existing row to PENDING and replaces the
// full answer set.
func (s *RegistrationService) Register(userID, eventID string, answers []AnswerInput) (*models.Registration, error) {
	var registration models.Registration

	err := s.db.Transaction(func(tx *gorm.DB) error {
		eventQuery := tx
		if tx.Dialector.Name() == "postgres" {
			eventQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event models.Event
		if err := eventQuery.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Registration{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(event.Capacity) {
			logger.Warn.Printf("Register: event %s at capacity (%d/%d)", eventID, count, event.Capacity)
			return ErrCapacityExceeded
		}

		var questions []models.EventQuestion
		if err := tx.Where("event_id = ?", eventID).
			Order("position asc").
			Find(&questions).Error; err != nil {
			return err
		}
		if err := validateRequiredAnswers(questions, answers); err != nil {
			return err
		}

		var existing models.Registration
		err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing).Error
		switch {
		case err == nil:
			// re-entry is always allowed: any prior status, REJECTED included,
			// resets to PENDING
			if err := tx.Model(&existing).Update("status", models.RegistrationPending).Error; err != nil {
				return err
			}
			existing.Status = models.RegistrationPending
			registration = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			registration = models.Registration{
				UserID:  userID,
				EventID: eventID,
				Status:  models.RegistrationPending,
			}
			if err := tx.Create(&registration).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// replace the answer set wholesale
		if err := tx.Where("registration_id = ?", registration.ID).
			Delete(&models.RegistrationAnswer{}).Error; err != nil {
			return err
		}
		for _, answer := range answers {
			row := models.RegistrationAnswer{
				RegistrationID: registration.ID,
				QuestionID:     answer.QuestionID,
				Answer:         answer.Answer,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("Register: user %s registered for event %s (registration %s)", userID, eventID, registration.ID)
	return &registration, nil
}

// validateRequiredAnswers checks that every required question received a
// non-empty answer.
func validateRequiredAnswers(questions []models.EventQuestion, answers []AnswerInput) error {
	byQuestion := make(map[string]string, len(answers))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = answer.Answer
	}

	for _, question := range questions {
		if !question.Required {
			continue
		}
		if strings.TrimSpace(byQuestion[question.ID]) == "" {
			return NewValidationError("Please answer: " + question.Label)
		}
	}
	return nil
}

// Decide applies an admin approval or rejection. Illegal transitions are
// refused outright. Approval stamps ApprovedAt and immediately ensures a
// payment order exists for the registration.
func (s *RegistrationService) Decide(registrationID string, decision models.RegistrationStatus) (*models.Registration, error) {
	if decision != models.RegistrationApproved && decision != models.RegistrationRejected {
		return nil, NewValidationError("decision must be APPROVED or REJECTED")
	}

	var registration models.Registration
	if err := s.db.First(&registration, "id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration %s: %w", registrationID, ErrNotFound)
		}
		return nil, err
	}

	if !registration.Status.CanTransition(decision) {
		logger.Warn.Printf("Decide: illegal transition %s -> %s for registration %s",
			registration.Status, decision, registrationID)
		return nil, ErrStateConflict
	}

	updates := map[string]interface{}{
		"status":      decision,
		"approved_at": nil,
	}
	var approvedAt *time.Time
	if decision == models.RegistrationApproved {
		now := time.Now()
		approvedAt = &now
		updates["approved_at"] = now
	}

	if err := s.db.Model(&registration).Updates(updates).Error; err != nil {
		return nil, err
	}
	registration.Status = decision
	registration.ApprovedAt = approvedAt

	logger.Info.Printf("Decide: registration %s -> %s", registrationID, decision)

	if decision == models.RegistrationApproved {
		if _, err := s.payments.EnsureOrder(registrationID); err != nil {
			// the registration stays APPROVED; the order endpoint retries
			// creation when the participant opens checkout
			logger.Error.Printf("Decide: payment order for registration %s failed: %v", registrationID, err)
			return nil, err
		}
	}

	return &registration, nil
}

// Get loads one registration with its event, answers and payment.
func (s *RegistrationService) Get(registrationID string) (*models.Registration, error) {
	var registration models.Registration
	err := s.db.
		Preload("Event").
		Preload("Answers").
		Preload("Payment").
		First(&registration, "id = ?", registrationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration %s: %w", registrationID, ErrNotFound)
		}
		return nil, err
	}
	return &registration, nil
}

// ListForUser returns the user's registrations, newest first.
func (s *RegistrationService) ListForUser(userID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.
		Preload("Event").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&registrations).Error
	return registrations, err
}

// ListAll returns every registration for the admin review queue.
func (s *RegistrationService) ListAll() ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.
		Preload("User").
		Preload("Event").
		Preload("Answers").
		Preload("Payment").
		Order("created_at desc").
		Find(&registrations).Error
	return registrations, err
}
