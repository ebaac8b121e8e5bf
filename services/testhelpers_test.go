// file: services/testhelpers_test.go
package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gaittrib/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
// Connections are capped at one so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:             "Test User",
		Email:            email,
		Role:             models.RoleUser,
		ProfileCompleted: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, capacity int, priceRupees int64) *models.Event {
	t.Helper()
	creator := seedUser(t, db, "organizer+"+time.Now().Format("150405.000000000")+"@gaittrib.test")
	event := &models.Event{
		Title:       "Sunday 5K Run",
		Description: "Weekly community endurance run.",
		Type:        models.EventFitness,
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "City Park",
		PriceRupees: priceRupees,
		Capacity:    capacity,
		CreatedByID: creator.ID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedRegistration(t *testing.T, db *gorm.DB, userID, eventID string, status models.RegistrationStatus) *models.Registration {
	t.Helper()
	registration := &models.Registration{
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}
	require.NoError(t, db.Create(registration).Error)
	return registration
}
