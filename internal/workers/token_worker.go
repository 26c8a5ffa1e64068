package workers

import (
	"context"
	"time"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/repositories"
)

// TokenWorker removes expired refresh tokens.
type TokenWorker struct {
	users    repositories.UserRepository
	interval time.Duration
}

func NewTokenWorker(users repositories.UserRepository) *TokenWorker {
	return &TokenWorker{users: users, interval: 12 * time.Hour}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token worker stopped")
			return
		case <-ticker.C:
			err := w.users.CleanExpiredRefreshTokens()
			logger.WorkerLog("token", "clean_expired", err)
		}
	}
}
