package workers

import (
	"context"
	"time"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/repositories"
)

// JobWorker expires open jobs whose deadline has passed.
type JobWorker struct {
	jobs     repositories.JobRepository
	interval time.Duration
}

func NewJobWorker(jobs repositories.JobRepository) *JobWorker {
	return &JobWorker{jobs: jobs, interval: 1 * time.Hour}
}

func (w *JobWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *JobWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job worker stopped")
			return
		case <-ticker.C:
			closed, err := w.jobs.CloseExpired(time.Now())
			logger.WorkerLog("job", "close_expired", err)
			if err == nil && closed > 0 {
				logger.Info("closed expired jobs", "count", closed)
			}
		}
	}
}
