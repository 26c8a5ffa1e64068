package services

import (
	"gorm.io/gorm"

	"jobsoko_backend/internal/email"
	"jobsoko_backend/internal/mpesa"
	"jobsoko_backend/internal/repositories"
)

// ServiceContainer wires repositories into services once at startup and
// hands the result to the handler layer.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Job          JobService
	Application  ApplicationService
	Chat         ChatService
	Notification NotificationService
	Skill        SkillService
	Payment      PaymentService

	Users         repositories.UserRepository
	Jobs          repositories.JobRepository
	Notifications repositories.NotificationRepository
}

func NewServiceContainer(db *gorm.DB, emails email.Provider, gateway mpesa.Gateway, broadcaster Broadcaster) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	jobs := repositories.NewJobRepository(db)
	applications := repositories.NewApplicationRepository(db)
	messages := repositories.NewMessageRepository(db)
	notifications := repositories.NewNotificationRepository(db)
	skills := repositories.NewSkillRepository(db)
	payments := repositories.NewPaymentRepository(db)

	notificationService := NewNotificationService(notifications)

	return &ServiceContainer{
		Auth:         NewAuthService(users, emails),
		User:         NewUserService(users),
		Job:          NewJobService(jobs),
		Application:  NewApplicationService(applications, jobs, users, notificationService),
		Chat:         NewChatService(messages, jobs, users, notificationService, broadcaster),
		Notification: notificationService,
		Skill:        NewSkillService(skills),
		Payment:      NewPaymentService(payments, jobs, users, gateway),

		Users:         users,
		Jobs:          jobs,
		Notifications: notifications,
	}
}
