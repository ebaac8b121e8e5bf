// Package services: services/leaderboard_service.go
package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gaittrib/logger"
	"gaittrib/models"
)

// ConsistentUser is a row of the attendance ranking: a user and their
// count of CONFIRMED registrations.
type ConsistentUser struct {
	UserID          string
	Name            string
	Email           string
	AttendanceCount int64
}

// EventStanding pairs an event with its current registration count for
// the admin overview.
type EventStanding struct {
	Event         models.Event
	Registrations int64
}

// OverviewStats is the aggregate block on the admin dashboard.
type OverviewStats struct {
	TotalEvents        int64
	TotalRegistrations int64
	RevenuePaise       int64
	TopPlayer          string
	RecentEvents       []EventStanding
	FitnessCount       int
	TripCount          int
}

// LeaderboardServiceInterface covers admin result entry plus the read-side
// rankings and analytics.
type LeaderboardServiceInterface interface {
	UpsertResult(eventID, userID string, score, rank int) (*models.LeaderboardEntry, error)
	EventRanking(eventID string) ([]models.LeaderboardEntry, error)
	GlobalRanking(limit int) ([]models.LeaderboardEntry, error)
	MostConsistentUsers(limit int) ([]ConsistentUser, error)
	Overview() (*OverviewStats, error)
}

// LeaderboardService is pure query composition over confirmed
// registrations and recorded scores; UpsertResult is its only write.
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a LeaderboardService.
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// UpsertResult records an admin-entered (score, rank) for a (event, user)
// pair, overwriting any previous result for the same pair.
func (s *LeaderboardService) UpsertResult(eventID, userID string, score, rank int) (*models.LeaderboardEntry, error) {
	if score < 0 {
		return nil, NewValidationError("score must be zero or positive")
	}
	if rank < 1 {
		return nil, NewValidationError("rank must be 1 or higher")
	}

	entry := models.LeaderboardEntry{
		EventID: eventID,
		UserID:  userID,
		Score:   score,
		Rank:    rank,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "rank", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("UpsertResult: event %s user %s score=%d rank=%d", eventID, userID, score, rank)
	return &entry, nil
}

// EventRanking returns an event's entries ordered by rank ascending.
func (s *LeaderboardService) EventRanking(eventID string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.
		Preload("User").
		Where("event_id = ?", eventID).
		Order("rank asc").
		Find(&entries).Error
	return entries, err
}

// GlobalRanking returns the cross-event ranking: score descending with
// rank ascending as the tie-break.
func (s *LeaderboardService) GlobalRanking(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.
		Preload("User").
		Preload("Event").
		Order("score desc, rank asc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// MostConsistentUsers ranks users by their count of CONFIRMED
// registrations, descending, limited to the top N.
func (s *LeaderboardService) MostConsistentUsers(limit int) ([]ConsistentUser, error) {
	var rows []ConsistentUser
	err := s.db.Model(&models.Registration{}).
		Select("registrations.user_id as user_id, users.name as name, users.email as email, count(registrations.id) as attendance_count").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.status = ?", models.RegistrationConfirmed).
		Group("registrations.user_id, users.name, users.email").
		Order("attendance_count desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Overview assembles the admin dashboard aggregates.
func (s *LeaderboardService) Overview() (*OverviewStats, error) {
	var stats OverviewStats

	if err := s.db.Model(&models.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Registration{}).Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.RevenuePaise).Error; err != nil {
		return nil, err
	}

	top, err := s.MostConsistentUsers(1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		stats.TopPlayer = top[0].Name
		if stats.TopPlayer == "" {
			stats.TopPlayer = top[0].Email
		}
	}

	var events []models.Event
	if err := s.db.Order("created_at desc").Limit(8).Find(&events).Error; err != nil {
		return nil, err
	}
	for _, event := range events {
		var count int64
		if err := s.db.Model(&models.Registration{}).
			Where("event_id = ?", event.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.RecentEvents = append(stats.RecentEvents, EventStanding{Event: event, Registrations: count})
		switch event.Type {
		case models.EventFitness:
			stats.FitnessCount++
		case models.EventTrip:
			stats.TripCount++
		}
	}

	return &stats, nil
}
