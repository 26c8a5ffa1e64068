package workers

import (
	"context"
	"time"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/repositories"
)

const notificationRetention = 30 * 24 * time.Hour

// NotificationWorker prunes read notifications past the retention
// window. Unread notifications are never pruned.
type NotificationWorker struct {
	notifications repositories.NotificationRepository
	interval      time.Duration
}

func NewNotificationWorker(notifications repositories.NotificationRepository) *NotificationWorker {
	return &NotificationWorker{notifications: notifications, interval: 24 * time.Hour}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-notificationRetention)
			pruned, err := w.notifications.DeleteReadOlderThan(cutoff)
			logger.WorkerLog("notification", "prune_read", err)
			if err == nil && pruned > 0 {
				logger.Info("pruned read notifications", "count", pruned)
			}
		}
	}
}
