package repositories

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobsoko_backend/internal/models"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache
// name is keyed by the test name so parallel tests stay isolated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Application{},
		&models.Message{},
		&models.Notification{},
		&models.Skill{},
		&models.PaymentTransaction{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.test", name),
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestJob(t *testing.T, db *gorm.DB, employerID, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		EmployerID:  employerID,
		Title:       title,
		Description: "test job description",
		Category:    "general",
		Location:    "Nairobi",
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
