package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.InterviewConfig{},
		&models.PresetQuestion{},
		&models.Candidate{},
		&models.InterviewSession{},
		&models.ResponseRecord{},
		&models.Report{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
