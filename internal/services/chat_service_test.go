package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

func assertErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSendMessageRoundTrip(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	sent, err := chat.SendMessage(ctx, worker.ID, &dto.SendMessageRequest{
		JobID:       job.ID,
		RecipientID: employer.ID,
		Content:     "  I can start tomorrow  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "I can start tomorrow", sent.Content, "content is stored trimmed")
	assert.False(t, sent.Read)

	thread, err := chat.ListThread(ctx, job.ID, employer.ID, worker.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, sent.ID, thread[0].ID)
	assert.Equal(t, worker.ID, thread[0].SenderID)
}

func TestSendMessageValidation(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	// Whitespace-only content.
	_, err := chat.SendMessage(ctx, worker.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: employer.ID, Content: "   \n\t ",
	})
	assertErrorCode(t, err, apperrors.CodeValidationFailed)

	// Sender and recipient must differ.
	_, err = chat.SendMessage(ctx, worker.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: worker.ID, Content: "hello me",
	})
	assertErrorCode(t, err, apperrors.CodeValidationFailed)
}

func TestSendMessageParticipantChecks(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	stranger := createTestUser(t, db, "stranger", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	// A non-participant cannot send.
	_, err := chat.SendMessage(ctx, stranger.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: employer.ID, Content: "let me in",
	})
	assertErrorCode(t, err, apperrors.CodeForbidden)

	// A participant cannot message a non-participant.
	_, err = chat.SendMessage(ctx, employer.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: stranger.ID, Content: "hello outsider",
	})
	assertErrorCode(t, err, apperrors.CodeForbidden)

	// Unknown job.
	_, err = chat.SendMessage(ctx, employer.ID, &dto.SendMessageRequest{
		JobID: "00000000-0000-0000-0000-000000000000", RecipientID: worker.ID, Content: "hi",
	})
	assertErrorCode(t, err, apperrors.CodeNotFound)
}

func TestSendMessageFansOutToRoomAndRecipient(t *testing.T) {
	db, chat, broadcaster := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	sent, err := chat.SendMessage(ctx, employer.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: worker.ID, Content: "when can you start?",
	})
	require.NoError(t, err)

	require.Len(t, broadcaster.roomEvents[job.ID], 1)
	require.Len(t, broadcaster.userEvents[worker.ID], 1)

	event, ok := broadcaster.roomEvents[job.ID][0].(*MessageEvent)
	require.True(t, ok)
	assert.Equal(t, "new_message", event.Type)
	assert.Equal(t, sent.ID, event.Message.ID)
}

func TestListThreadMarksUnreadRead(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	_, err := chat.SendMessage(ctx, worker.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: employer.ID, Content: "first",
	})
	require.NoError(t, err)

	count, err := chat.UnreadCount(ctx, employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	thread, err := chat.ListThread(ctx, job.ID, employer.ID, worker.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.True(t, thread[0].Read)

	count, err = chat.UnreadCount(ctx, employer.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "viewing the thread consumes the unread state")
}

func TestListThreadForbiddenForStranger(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	stranger := createTestUser(t, db, "stranger", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	_, err := chat.ListThread(ctx, job.ID, stranger.ID, employer.ID)
	assertErrorCode(t, err, apperrors.CodeForbidden)

	_, err = chat.ListThread(ctx, "00000000-0000-0000-0000-000000000000", employer.ID, worker.ID)
	assertErrorCode(t, err, apperrors.CodeNotFound)
}

func TestListThreadForbiddenForStrangerCounterparty(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	stranger := createTestUser(t, db, "stranger", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	_, err := chat.SendMessage(ctx, worker.ID, &dto.SendMessageRequest{
		JobID: job.ID, RecipientID: employer.ID, Content: "first",
	})
	require.NoError(t, err)

	_, err = chat.ListThread(ctx, job.ID, employer.ID, stranger.ID)
	assertErrorCode(t, err, apperrors.CodeForbidden)

	// The rejected call must not have consumed the employer's unread state.
	count, err := chat.UnreadCount(ctx, employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func seedMessageAt(t *testing.T, db *gorm.DB, jobID, senderID, recipientID, content string, at time.Time) {
	t.Helper()
	msg := &models.Message{
		JobID:       jobID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(msg).Error)
}

func TestListConversationsGroupsByJobAndCounterparty(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	alice := createTestUser(t, db, "alice", models.UserRoleWorker)
	bob := createTestUser(t, db, "bob", models.UserRoleWorker)
	fence := createTestJob(t, db, employer.ID, "Fence repair")
	paint := createTestJob(t, db, employer.ID, "Painting")

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, fence.ID, alice.ID, employer.ID, "fence msg 1", base)
	seedMessageAt(t, db, fence.ID, employer.ID, alice.ID, "fence reply", base.Add(time.Minute))
	seedMessageAt(t, db, fence.ID, bob.ID, employer.ID, "bob on fence", base.Add(2*time.Minute))
	seedMessageAt(t, db, paint.ID, alice.ID, employer.ID, "paint msg", base.Add(3*time.Minute))

	conversations, err := chat.ListConversations(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 3, "one row per (job, counterparty) pair")

	// Newest activity first.
	assert.Equal(t, paint.ID, conversations[0].JobID)
	assert.Equal(t, alice.ID, conversations[0].CounterpartyID)
	assert.Equal(t, "paint msg", conversations[0].LastMessage)

	assert.Equal(t, fence.ID, conversations[1].JobID)
	assert.Equal(t, bob.ID, conversations[1].CounterpartyID)

	assert.Equal(t, fence.ID, conversations[2].JobID)
	assert.Equal(t, alice.ID, conversations[2].CounterpartyID)
	assert.Equal(t, "fence reply", conversations[2].LastMessage)
	assert.Equal(t, 2, conversations[2].MessageCount)
	assert.Equal(t, "Fence repair", conversations[2].JobTitle)
	assert.Equal(t, "alice", conversations[2].CounterpartyName)
}

func TestListConversationsUnreadCounts(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")
	createTestApplication(t, db, job.ID, worker.ID)

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, job.ID, worker.ID, employer.ID, "one", base)
	seedMessageAt(t, db, job.ID, worker.ID, employer.ID, "two", base.Add(time.Minute))
	seedMessageAt(t, db, job.ID, employer.ID, worker.ID, "reply", base.Add(2*time.Minute))

	conversations, err := chat.ListConversations(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, 2, conversations[0].UnreadCount)
	assert.Equal(t, 3, conversations[0].MessageCount)
	assert.Equal(t, "reply", conversations[0].LastMessage)
	assert.Equal(t, employer.ID, conversations[0].LastSenderID)

	// Reading the thread resets the count.
	_, err = chat.ListThread(ctx, job.ID, employer.ID, worker.ID)
	require.NoError(t, err)

	conversations, err = chat.ListConversations(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Zero(t, conversations[0].UnreadCount)
}

func TestListConversationsSkipsUnresolvablePairs(t *testing.T) {
	db, chat, _ := newChatFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, job.ID, worker.ID, employer.ID, "valid", base)
	// Orphaned rows: deleted job and deleted counterparty.
	seedMessageAt(t, db, "00000000-0000-0000-0000-000000000000", worker.ID, employer.ID, "dead job", base)
	seedMessageAt(t, db, job.ID, "00000000-0000-0000-0000-000000000001", employer.ID, "ghost", base)

	conversations, err := chat.ListConversations(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, worker.ID, conversations[0].CounterpartyID)
}
