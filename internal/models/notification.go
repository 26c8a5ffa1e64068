package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID   string         `gorm:"not null;index" json:"user_id"`
	Type     string         `gorm:"not null" json:"type"` // "job_application", "new_message", "status_update"
	Title    string         `gorm:"not null" json:"title"`
	Message  string         `json:"message"`
	JobID    *string        `gorm:"index" json:"job_id,omitempty"`
	SenderID *string        `json:"sender_id,omitempty"`
	Data     datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"application_id": "..."}
	IsRead   bool           `gorm:"default:false" json:"is_read"`
	ReadAt   *time.Time     `json:"read_at,omitempty"`
}
