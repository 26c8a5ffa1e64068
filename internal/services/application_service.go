package services

import (
	"context"
	"errors"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(ctx context.Context, jobID, workerID string, req *dto.ApplyRequest) (*models.Application, error)
	ListByJob(ctx context.Context, jobID, employerID string) ([]models.Application, error)
	ListByWorker(ctx context.Context, workerID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, applicationID, employerID string, status models.ApplicationStatus) (*models.Application, error)
	Withdraw(ctx context.Context, applicationID, workerID string) error
}

type applicationServiceImpl struct {
	applications  repositories.ApplicationRepository
	jobs          repositories.JobRepository
	users         repositories.UserRepository
	notifications NotificationService
}

func NewApplicationService(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	notifications NotificationService,
) ApplicationService {
	return &applicationServiceImpl{
		applications:  applications,
		jobs:          jobs,
		users:         users,
		notifications: notifications,
	}
}

func (s *applicationServiceImpl) Apply(ctx context.Context, jobID, workerID string, req *dto.ApplyRequest) (*models.Application, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.NewValidationError("application", "job is not open for applications")
	}
	if job.EmployerID == workerID {
		return nil, apperrors.NewValidationError("application", "cannot apply to your own job")
	}

	application := &models.Application{
		JobID:        jobID,
		WorkerID:     workerID,
		CoverLetter:  req.CoverLetter,
		ProposedRate: req.ProposedRate,
		Status:       models.ApplicationStatusPending,
	}
	if err := s.applications.Create(application); err != nil {
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.NewConflictError("application", "already applied to this job")
		}
		return nil, apperrors.InternalError(err)
	}

	workerName := workerID
	if worker, err := s.users.FindByID(workerID); err == nil {
		workerName = worker.Name
	}
	s.notifications.NotifyJobApplication(ctx, job, workerID, workerName)

	return application, nil
}

func (s *applicationServiceImpl) ListByJob(ctx context.Context, jobID, employerID string) ([]models.Application, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.NewForbiddenError("application", "only the job owner can list applications")
	}

	applications, err := s.applications.FindByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

func (s *applicationServiceImpl) ListByWorker(ctx context.Context, workerID string) ([]models.Application, error) {
	applications, err := s.applications.FindByWorker(workerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

// UpdateStatus accepts or rejects an application. Accepting assigns the
// worker and moves the job out of the open state.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, applicationID, employerID string, status models.ApplicationStatus) (*models.Application, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.findJob(application.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.NewForbiddenError("application", "only the job owner can decide applications")
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, apperrors.NewValidationError("application", "application already decided")
	}

	if err := s.applications.UpdateStatus(applicationID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = status

	if status == models.ApplicationStatusAccepted {
		if err := s.jobs.AssignWorker(job.ID, application.WorkerID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifications.NotifyApplicationStatus(ctx, job, application.WorkerID, status)
	return application, nil
}

func (s *applicationServiceImpl) Withdraw(ctx context.Context, applicationID, workerID string) error {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return err
	}
	if application.WorkerID != workerID {
		return apperrors.NewForbiddenError("application", "only the applicant can withdraw")
	}
	if application.Status != models.ApplicationStatusPending {
		return apperrors.NewValidationError("application", "application already decided")
	}
	if err := s.applications.Delete(applicationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *applicationServiceImpl) findApplication(id string) (*models.Application, error) {
	application, err := s.applications.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("application", "application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *applicationServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("job", "job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}
