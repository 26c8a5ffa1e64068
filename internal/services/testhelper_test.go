package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
)

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

func createTestApplication(t *testing.T, db *gorm.DB, jobID, workerID string) *models.Application {
	t.Helper()

	application := &models.Application{
		JobID:       jobID,
		WorkerID:    workerID,
		CoverLetter: "I can do this job well",
		Status:      models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(application).Error)
	return application
}

// recordingBroadcaster captures fan-out calls for assertions.
type recordingBroadcaster struct {
	mu         sync.Mutex
	roomEvents map[string][]any
	userEvents map[string][]any
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{
		roomEvents: make(map[string][]any),
		userEvents: make(map[string][]any),
	}
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, event any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roomEvents[roomID] = append(b.roomEvents[roomID], event)
}

func (b *recordingBroadcaster) BroadcastToUser(userID string, event any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userEvents[userID] = append(b.userEvents[userID], event)
}

func newChatFixture(t *testing.T) (*gorm.DB, ChatService, *recordingBroadcaster) {
	t.Helper()

	db := newTestDB(t)
	broadcaster := newRecordingBroadcaster()
	notifications := NewNotificationService(repositories.NewNotificationRepository(db))
	chat := NewChatService(
		repositories.NewMessageRepository(db),
		repositories.NewJobRepository(db),
		repositories.NewUserRepository(db),
		notifications,
		broadcaster,
	)
	return db, chat, broadcaster
}
