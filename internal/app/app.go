package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobsoko_backend/internal/config"
	"jobsoko_backend/internal/email"
	"jobsoko_backend/internal/handlers"
	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/mpesa"
	"jobsoko_backend/internal/routes"
	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/workers"
	"jobsoko_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := Migrate(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	router, container := SetupRouter(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, container)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// Migrate applies the schema. AutoMigrate is additive only, so running
// it on every boot is safe.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Application{},
		&models.Message{},
		&models.Notification{},
		&models.Skill{},
		&models.PaymentTransaction{},
	)
}

// SetupRouter wires repositories, services, realtime and HTTP routing
// into a ready gin engine. Split from Run so tests can build the full
// stack against their own database.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	emailProvider := newEmailProvider(cfg)
	gateway := newPaymentGateway(cfg)

	wsManager := ws.NewManager()

	container := services.NewServiceContainer(db, emailProvider, gateway, wsManager)
	appHandlers := handlers.NewAppHandlers(container, db)
	wsHandler := ws.NewHandler(wsManager, container.Chat)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.Register(router, appHandlers, wsHandler)
	return router, container
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, emails will be logged only")
		return email.NewNoopProvider()
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		BaseURL:   cfg.Email.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func newPaymentGateway(cfg *config.Config) mpesa.Gateway {
	if cfg.Mpesa.ConsumerKey == "" {
		logger.Warn("mpesa not configured, payment endpoints disabled")
		return mpesa.NewDisabledGateway()
	}

	client, err := mpesa.NewClient(&mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		Passkey:        cfg.Mpesa.Passkey,
		CallbackURL:    cfg.Mpesa.CallbackURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize mpesa client", "error", err)
	}
	return client
}

func startWorkers(ctx context.Context, container *services.ServiceContainer) {
	workers.NewJobWorker(container.Jobs).Start(ctx)
	workers.NewNotificationWorker(container.Notifications).Start(ctx)
	workers.NewTokenWorker(container.Users).Start(ctx)
}
