package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobsoko_backend/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, userID string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:  userID,
		Type:    NotificationTypeNewMessage,
		Title:   "New message",
		Message: "test",
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestMarkAsReadSetsReadAtOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	user := createTestUser(t, db, "reader", models.UserRoleWorker)
	n := seedNotification(t, db, user.ID)

	require.NoError(t, repo.MarkAsRead(n.ID))

	var first models.Notification
	require.NoError(t, db.First(&first, "id = ?", n.ID).Error)
	require.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)

	// A second call must not move the read timestamp.
	require.NoError(t, repo.MarkAsRead(n.ID))
	var second models.Notification
	require.NoError(t, db.First(&second, "id = ?", n.ID).Error)
	assert.Equal(t, first.ReadAt.Unix(), second.ReadAt.Unix())
}

func TestFindByUserUnreadOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	user := createTestUser(t, db, "reader", models.UserRoleWorker)
	read := seedNotification(t, db, user.ID)
	seedNotification(t, db, user.ID)
	require.NoError(t, repo.MarkAsRead(read.ID))

	notifications, total, err := repo.FindByUser(user.ID, NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)
}

func TestDeleteReadOlderThanKeepsUnread(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	user := createTestUser(t, db, "reader", models.UserRoleWorker)
	read := seedNotification(t, db, user.ID)
	unread := seedNotification(t, db, user.ID)
	require.NoError(t, repo.MarkAsRead(read.ID))

	// Cutoff in the future: everything read qualifies.
	pruned, err := repo.DeleteReadOlderThan(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining, "user_id = ?", user.ID).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, unread.ID, remaining[0].ID)
}
