// Package services: services/event_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gaittrib/logger"
	"gaittrib/models"
)

// QuestionInput is one admin-authored registration-form question.
type QuestionInput struct {
	Label    string
	Kind     models.QuestionKind
	Required bool
	Options  []string
}

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title       string
	Description string
	Type        models.EventType
	Date        time.Time
	Location    string
	PriceRupees int64
	Capacity    int
	ImageURL    string
	Questions   []QuestionInput
}

// EventServiceInterface manages events and their question sets.
type EventServiceInterface interface {
	Create(createdByID string, input EventInput) (*models.Event, error)
	Update(eventID string, input EventInput) (*models.Event, error)
	Get(eventID string) (*models.Event, error)
	List() ([]models.Event, error)
	RegistrationCount(eventID string) (int64, error)
}

// EventService implements event CRUD over the relational store.
type EventService struct {
	db *gorm.DB
}

// NewEventService creates an EventService.
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func validateEventInput(input EventInput) error {
	if len(strings.TrimSpace(input.Title)) < 3 {
		return NewValidationError("title must be at least 3 characters")
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		return NewValidationError("description must be at least 10 characters")
	}
	if input.Type != models.EventFitness && input.Type != models.EventTrip {
		return NewValidationError("type must be FITNESS or TRIP")
	}
	if len(strings.TrimSpace(input.Location)) < 3 {
		return NewValidationError("location must be at least 3 characters")
	}
	if input.PriceRupees < 0 {
		return NewValidationError("price cannot be negative")
	}
	if input.Capacity < 1 {
		return NewValidationError("capacity must be at least 1")
	}
	for _, question := range input.Questions {
		if strings.TrimSpace(question.Label) == "" {
			return NewValidationError("question label cannot be empty")
		}
		if question.Kind.IsChoice() && len(question.Options) == 0 {
			return NewValidationError("options are required for choice questions")
		}
	}
	return nil
}

// Create persists a new event together with its question set.
func (s *EventService) Create(createdByID string, input EventInput) (*models.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Date:        input.Date,
		Location:    input.Location,
		PriceRupees: input.PriceRupees,
		Capacity:    input.Capacity,
		ImageURL:    input.ImageURL,
		CreatedByID: createdByID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return replaceQuestions(tx, event.ID, input.Questions)
	})
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("Create: event %s (%s) capacity=%d", event.ID, event.Title, event.Capacity)
	return &event, nil
}

// Update edits an event and replaces its question set wholesale. Answers
// hanging off the old questions are removed in the same transaction so no
// answer ever references a deleted question.
func (s *EventService) Update(eventID string, input EventInput) (*models.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        input.Title,
		"description":  input.Description,
		"type":         input.Type,
		"date":         input.Date,
		"location":     input.Location,
		"price_rupees": input.PriceRupees,
		"capacity":     input.Capacity,
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&event).Updates(updates).Error; err != nil {
			return err
		}
		return replaceQuestions(tx, eventID, input.Questions)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(eventID)
}

// replaceQuestions deletes the event's questions (and any answers tied to
// them) and inserts the new set with positions preserved.
func replaceQuestions(tx *gorm.DB, eventID string, questions []QuestionInput) error {
	var existingIDs []string
	if err := tx.Model(&models.EventQuestion{}).
		Where("event_id = ?", eventID).
		Pluck("id", &existingIDs).Error; err != nil {
		return err
	}

	if len(existingIDs) > 0 {
		if err := tx.Where("question_id IN ?", existingIDs).
			Delete(&models.RegistrationAnswer{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("event_id = ?", eventID).
		Delete(&models.EventQuestion{}).Error; err != nil {
		return err
	}

	for i, question := range questions {
		row := models.EventQuestion{
			EventID:  eventID,
			Label:    question.Label,
			Kind:     question.Kind,
			Required: question.Required,
			Options:  question.Options,
			Position: i,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get loads one event with its ordered questions.
func (s *EventService) Get(eventID string) (*models.Event, error) {
	var event models.Event
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil, err
	}
	return &event, nil
}

// List returns every event, newest first.
func (s *EventService) List() ([]models.Event, error) {
	var events []models.Event
	err := s.db.Order("created_at desc").Find(&events).Error
	return events, err
}

// RegistrationCount returns the number of registration rows an event
// holds, any status.
func (s *EventService) RegistrationCount(eventID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
