// Package models defines the persisted entities of the platform.
// File: models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ----------------------- enums -----------------------

// Role distinguishes platform administrators from regular members.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Gender is a demographic profile field.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// EventType categorises an event.
type EventType string

const (
	EventFitness EventType = "FITNESS"
	EventTrip    EventType = "TRIP"
)

// QuestionKind is the answer shape of an event question.
type QuestionKind string

const (
	QuestionText     QuestionKind = "TEXT"
	QuestionRadio    QuestionKind = "RADIO"
	QuestionCheckbox QuestionKind = "CHECKBOX"
)

// IsChoice reports whether the kind requires a non-empty option set.
func (k QuestionKind) IsChoice() bool {
	return k == QuestionRadio || k == QuestionCheckbox
}

// ----------------------- user model -----------------------

// User is a platform member. Demographic fields stay nil until the
// profile-completion step; ProfileCompleted gates event registration.
type User struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string
	Role             Role `gorm:"type:varchar(10);not null;default:'USER'"`
	Gender           *Gender
	Age              *int
	Phone            string
	ProfileCompleted bool
	ImageURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ------------------------ event model -----------------------

// Event is an admin-created activity with a hard registration capacity.
// PriceRupees is the advertised price in the major currency unit; payment
// amounts are derived in paise at order-creation time.
type Event struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Type        EventType `gorm:"type:varchar(10);not null"`
	Date        time.Time
	Location    string
	PriceRupees int64
	Capacity    int
	ImageURL    string
	CreatedByID string
	CreatedBy   *User           `gorm:"foreignKey:CreatedByID"`
	Questions   []EventQuestion `gorm:"foreignKey:EventID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventQuestion is a single item on an event's registration form.
// Options must be non-empty for choice kinds; Position preserves the
// admin-authored ordering.
type EventQuestion struct {
	ID       string `gorm:"primaryKey"`
	EventID  string `gorm:"index;not null"`
	Label    string `gorm:"not null"`
	Kind     QuestionKind `gorm:"type:varchar(10);not null"`
	Required bool
	Options  []string `gorm:"serializer:json"`
	Position int
}

func (q *EventQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// ------------------- registration models -------------------

/// Registration links a user to an event. One row per (user, event):
// re-registering resets the existing row to PENDING instead of inserting.
type Registration struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"uniqueIndex:idx_registration_user_event;not null"`
	EventID    string `gorm:"uniqueIndex:idx_registration_user_event;not null"`
	User       *User  `gorm:"foreignKey:UserID"`
	Event      *Event `gorm:"foreignKey:EventID"`
	Status     RegistrationStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	ApprovedAt *time.Time
	PaidAt     *time.Time
	Answers    []RegistrationAnswer `gorm:"foreignKey:RegistrationID"`
	Payment    *Payment             `gorm:"foreignKey:RegistrationID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RegistrationAnswer holds one answer to one event question. The whole
// answer set is replaced when the user re-registers.
type RegistrationAnswer struct {
	ID             string `gorm:"primaryKey"`
	RegistrationID string `gorm:"index;not null"`
	QuestionID     string `gorm:"not null"`
	Answer         string `gorm:"type:text"`
}

func (a *RegistrationAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ------------------------ payment model -----------------------

// Payment is the gateway order backing an approved registration.
// Amounts are in paise. Exactly one per registration, keyed to the
// gateway by the unique OrderID.
type Payment struct {
	ID              string `gorm:"primaryKey"`
	RegistrationID  string `gorm:"uniqueIndex;not null"`
	OrderID         string `gorm:"uniqueIndex;not null"`
	Amount          int64
	PlatformFee     int64
	OrganizerAmount int64
	Status          PaymentStatus `gorm:"type:varchar(10);not null;default:'CREATED'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// --------------------- leaderboard model ---------------------

// LeaderboardEntry is an admin-entered (score, rank) result for a
// (event, user) pair. Re-adding a result for the same pair overwrites it.
type LeaderboardEntry struct {
	ID        string `gorm:"primaryKey"`
	EventID   string `gorm:"uniqueIndex:idx_leaderboard_event_user;not null"`
	UserID    string `gorm:"uniqueIndex:idx_leaderboard_event_user;not null"`
	Event     *Event `gorm:"foreignKey:EventID"`
	User      *User  `gorm:"foreignKey:UserID"`
	Score     int
	Rank      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *LeaderboardEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&EventQuestion{},
		&Registration{},
		&RegistrationAnswer{},
		&Payment{},
		&LeaderboardEntry{},
	)
}
