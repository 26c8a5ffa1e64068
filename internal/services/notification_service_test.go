package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/pkg/apperrors"
)

func newNotificationFixture(t *testing.T) (svc NotificationService, repo repositories.NotificationRepository, users []*models.User) {
	t.Helper()

	db := newTestDB(t)
	repo = repositories.NewNotificationRepository(db)
	svc = NewNotificationService(repo)
	users = []*models.User{
		createTestUser(t, db, "owner", models.UserRoleWorker),
		createTestUser(t, db, "other", models.UserRoleWorker),
	}
	return svc, repo, users
}

func TestMarkReadOwnershipCheck(t *testing.T) {
	svc, repo, users := newNotificationFixture(t)
	owner, other := users[0], users[1]
	ctx := context.Background()

	n := &models.Notification{
		UserID:  owner.ID,
		Type:    repositories.NotificationTypeNewMessage,
		Title:   "New message",
		Message: "hi",
	}
	require.NoError(t, repo.Create(n))

	// Another user's notification reads as not found.
	err := svc.MarkRead(ctx, other.ID, n.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// The owner can mark it.
	require.NoError(t, svc.MarkRead(ctx, owner.ID, n.ID))

	// Marking again is a silent no-op.
	require.NoError(t, svc.MarkRead(ctx, owner.ID, n.ID))

	count, err := svc.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc, _, users := newNotificationFixture(t)
	ctx := context.Background()

	err := svc.MarkRead(ctx, users[0].ID, "00000000-0000-0000-0000-000000000000")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestNotifyNewMessageCreatesForRecipient(t *testing.T) {
	svc, repo, users := newNotificationFixture(t)
	owner, other := users[0], users[1]
	ctx := context.Background()

	job := &models.Job{BaseModel: models.BaseModel{ID: "job-1"}, EmployerID: other.ID, Title: "Fence repair"}
	msg := &models.Message{SenderID: other.ID, RecipientID: owner.ID}
	svc.NotifyNewMessage(ctx, job, msg, "Other Person")

	notifications, total, err := repo.FindByUser(owner.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, notifications, 1)
	assert.Equal(t, repositories.NotificationTypeNewMessage, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "Fence repair")
	require.NotNil(t, notifications[0].SenderID)
	assert.Equal(t, other.ID, *notifications[0].SenderID)
}

func TestListAndMarkAllRead(t *testing.T) {
	svc, repo, users := newNotificationFixture(t)
	owner := users[0]
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Notification{
			UserID:  owner.ID,
			Type:    repositories.NotificationTypeStatusUpdate,
			Title:   "Application update",
			Message: "update",
		}))
	}

	resp, err := svc.List(ctx, owner.ID, repositories.NotificationCriteria{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.Total)
	assert.EqualValues(t, 3, resp.UnreadCount)
	assert.Len(t, resp.Notifications, 3)

	require.NoError(t, svc.MarkAllRead(ctx, owner.ID))

	count, err := svc.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
