package handlers

import (
	"gorm.io/gorm"

	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Chat         *ChatHandler
	Notification *NotificationHandler
	Skill        *SkillHandler
	Payment      *PaymentHandler
	Health       *HealthHandler
}

func NewAppHandlers(container *services.ServiceContainer, db *gorm.DB) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth),
		User:         NewUserHandler(base, container.User),
		Job:          NewJobHandler(base, container.Job),
		Application:  NewApplicationHandler(base, container.Application),
		Chat:         NewChatHandler(base, container.Chat),
		Notification: NewNotificationHandler(base, container.Notification),
		Skill:        NewSkillHandler(base, container.Skill),
		Payment:      NewPaymentHandler(base, container.Payment),
		Health:       NewHealthHandler(db),
	}
}
