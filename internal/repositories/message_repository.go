package repositories

import (
	"jobsoko_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	// Create appends a message to the job-scoped log.
	Create(message *models.Message) error
	// FindThread returns all messages between the pair within the job,
	// ordered by created_at ascending.
	FindThread(jobID, userA, userB string) ([]models.Message, error)
	// MarkThreadRead flips read=true on every unread message in the job
	// where recipientID is the recipient. Already-read rows are untouched,
	// so repeating the call is a no-op.
	MarkThreadRead(jobID, recipientID string) error
	// FindUserMessages returns every message the user sent or received,
	// ordered by created_at ascending. Input for the conversation
	// aggregator.
	FindUserMessages(userID string) ([]models.Message, error)
	CountUnread(userID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindThread(jobID, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("job_id = ?", jobID).
		Where(
			r.db.Where("sender_id = ? AND recipient_id = ?", userA, userB).
				Or("sender_id = ? AND recipient_id = ?", userB, userA),
		).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkThreadRead(jobID, recipientID string) error {
	return r.db.Model(&models.Message{}).
		Where("job_id = ? AND recipient_id = ? AND read = ?", jobID, recipientID, false).
		Update("read", true).Error
}

func (r *MessageRepositoryImpl) FindUserMessages(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
