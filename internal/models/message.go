package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is an entry in the append-only, job-scoped message log. Immutable
// once created except for the Read flag, which the recipient's act of viewing
// the thread flips false→true.
type Message struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       string    `gorm:"not null;index" json:"job_id"`
	SenderID    string    `gorm:"not null;index" json:"sender_id"`
	RecipientID string    `gorm:"not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"` // sole ordering key
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
