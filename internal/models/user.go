package models

import "time"

type User struct {
	BaseModel
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Phone             string     `json:"phone"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	Skills        []Skill        `gorm:"foreignKey:WorkerID" json:"skills,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
