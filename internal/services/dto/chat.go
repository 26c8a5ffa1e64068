package dto

import (
	"time"

	"jobsoko_backend/internal/models"
)

type SendMessageRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid4"`
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
	Content     string `json:"content" validate:"required"`
}

type MessageResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		JobID:       m.JobID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

// ConversationResponse is one row of the inbox: a (job, counterparty)
// pair with the latest message and the viewer's unread count.
type ConversationResponse struct {
	JobID            string    `json:"job_id"`
	JobTitle         string    `json:"job_title"`
	CounterpartyID   string    `json:"counterparty_id"`
	CounterpartyName string    `json:"counterparty_name"`
	LastMessage      string    `json:"last_message"`
	LastSenderID     string    `json:"last_sender_id"`
	MessageCount     int       `json:"message_count"`
	UnreadCount      int       `json:"unread_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}
