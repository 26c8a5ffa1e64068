package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

func newApplicationFixture(t *testing.T) (*gorm.DB, ApplicationService, NotificationService) {
	t.Helper()

	db := newTestDB(t)
	notifications := NewNotificationService(repositories.NewNotificationRepository(db))
	svc := NewApplicationService(
		repositories.NewApplicationRepository(db),
		repositories.NewJobRepository(db),
		repositories.NewUserRepository(db),
		notifications,
	)
	return db, svc, notifications
}

func TestApplyNotifiesEmployer(t *testing.T) {
	db, svc, notifications := newApplicationFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	application, err := svc.Apply(ctx, job.ID, worker.ID, &dto.ApplyRequest{
		CoverLetter: "I can do this well",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	count, err := notifications.UnreadCount(ctx, employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestApplyTwiceConflicts(t *testing.T) {
	db, svc, _ := newApplicationFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	_, err := svc.Apply(ctx, job.ID, worker.ID, &dto.ApplyRequest{CoverLetter: "first application"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, job.ID, worker.ID, &dto.ApplyRequest{CoverLetter: "second application"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestApplyToOwnJobRejected(t *testing.T) {
	db, svc, _ := newApplicationFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	_, err := svc.Apply(ctx, job.ID, employer.ID, &dto.ApplyRequest{CoverLetter: "applying to myself"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestAcceptAssignsWorkerAndNotifies(t *testing.T) {
	db, svc, notifications := newApplicationFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	application, err := svc.Apply(ctx, job.ID, worker.ID, &dto.ApplyRequest{CoverLetter: "pick me"})
	require.NoError(t, err)

	decided, err := svc.UpdateStatus(ctx, application.ID, employer.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, decided.Status)

	var reloaded models.Job
	require.NoError(t, db.First(&reloaded, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusAssigned, reloaded.Status)
	require.NotNil(t, reloaded.WorkerID)
	assert.Equal(t, worker.ID, *reloaded.WorkerID)

	count, err := notifications.UnreadCount(ctx, worker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateStatusOnlyOwner(t *testing.T) {
	db, svc, _ := newApplicationFixture(t)
	ctx := context.Background()

	employer := createTestUser(t, db, "employer", models.UserRoleEmployer)
	intruder := createTestUser(t, db, "intruder", models.UserRoleEmployer)
	worker := createTestUser(t, db, "worker", models.UserRoleWorker)
	job := createTestJob(t, db, employer.ID, "Fence repair")

	application, err := svc.Apply(ctx, job.ID, worker.ID, &dto.ApplyRequest{CoverLetter: "pick me"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, application.ID, intruder.ID, models.ApplicationStatusAccepted)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
