package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobsoko_backend/internal/models"
)

func seedMessage(t *testing.T, db *gorm.DB, jobID, senderID, recipientID, content string) *models.Message {
	t.Helper()
	msg := &models.Message{
		JobID:       jobID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestFindThreadFiltersByPairAndJob(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	other := createTestUser(t, db, "other", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	otherJob := createTestJob(t, db, employer.ID, "Painting")

	seedMessage(t, db, job.ID, employer.ID, worker.ID, "hello")
	seedMessage(t, db, job.ID, worker.ID, employer.ID, "hi back")
	seedMessage(t, db, job.ID, employer.ID, other.ID, "different pair")
	seedMessage(t, db, otherJob.ID, employer.ID, worker.ID, "different job")

	thread, err := repo.FindThread(job.ID, employer.ID, worker.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)

	// Oldest first, both directions included.
	assert.Equal(t, "hello", thread[0].Content)
	assert.Equal(t, "hi back", thread[1].Content)
}

func TestMarkThreadReadOnlyTouchesRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	incoming := seedMessage(t, db, job.ID, worker.ID, employer.ID, "for employer")
	outgoing := seedMessage(t, db, job.ID, employer.ID, worker.ID, "for worker")

	require.NoError(t, repo.MarkThreadRead(job.ID, employer.ID))

	var received models.Message
	require.NoError(t, db.First(&received, "id = ?", incoming.ID).Error)
	assert.True(t, received.Read)

	var sent models.Message
	require.NoError(t, db.First(&sent, "id = ?", outgoing.ID).Error)
	assert.False(t, sent.Read, "messages sent by the reader stay unread for the counterparty")
}

func TestMarkThreadReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	seedMessage(t, db, job.ID, worker.ID, employer.ID, "one")

	require.NoError(t, repo.MarkThreadRead(job.ID, employer.ID))
	require.NoError(t, repo.MarkThreadRead(job.ID, employer.ID))

	count, err := repo.CountUnread(employer.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountUnread(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	seedMessage(t, db, job.ID, worker.ID, employer.ID, "one")
	seedMessage(t, db, job.ID, worker.ID, employer.ID, "two")
	seedMessage(t, db, job.ID, employer.ID, worker.ID, "reply")

	count, err := repo.CountUnread(employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountUnread(worker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
