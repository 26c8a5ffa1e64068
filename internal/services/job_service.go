package services

import (
	"context"
	"encoding/json"
	"errors"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, criteria repositories.JobCriteria) (*dto.JobListResponse, error)
	ListEmployerJobs(ctx context.Context, employerID string) ([]models.Job, error)
	ListWorkerJobs(ctx context.Context, workerID string) ([]models.Job, error)
	UpdateJob(ctx context.Context, jobID, employerID string, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID, employerID string) error
}

type jobServiceImpl struct {
	jobs repositories.JobRepository
}

func NewJobService(jobs repositories.JobRepository) JobService {
	return &jobServiceImpl{jobs: jobs}
}

func (s *jobServiceImpl) CreateJob(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if req.BudgetMax > 0 && req.BudgetMax < req.BudgetMin {
		return nil, apperrors.NewValidationError("job", "budget_max must not be below budget_min")
	}

	job := &models.Job{
		EmployerID:  employerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
		Status:      models.JobStatusOpen,
	}
	if len(req.RequiredSkills) > 0 {
		raw, err := json.Marshal(req.RequiredSkills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.RequiredSkills = raw
	}

	if err := s.jobs.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "employer_id", employerID)
	return job, nil
}

func (s *jobServiceImpl) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	// View counting is best-effort.
	if err := s.jobs.IncrementViews(jobID); err != nil {
		logger.CtxWarn(ctx, "failed to increment job views", "error", err, "job_id", jobID)
	}
	return job, nil
}

func (s *jobServiceImpl) ListJobs(ctx context.Context, criteria repositories.JobCriteria) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobs.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int(total) / criteria.PageSize
	if int(total)%criteria.PageSize != 0 {
		totalPages++
	}
	return &dto.JobListResponse{
		Jobs:       jobs,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *jobServiceImpl) ListEmployerJobs(ctx context.Context, employerID string) ([]models.Job, error) {
	jobs, err := s.jobs.FindByEmployer(employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *jobServiceImpl) ListWorkerJobs(ctx context.Context, workerID string) ([]models.Job, error) {
	jobs, err := s.jobs.FindByWorker(workerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *jobServiceImpl) UpdateJob(ctx context.Context, jobID, employerID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.NewForbiddenError("job", "only the job owner can update it")
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.BudgetMin != nil {
		job.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		job.BudgetMax = *req.BudgetMax
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.RequiredSkills != nil {
		raw, err := json.Marshal(req.RequiredSkills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.RequiredSkills = raw
	}
	if job.BudgetMax > 0 && job.BudgetMax < job.BudgetMin {
		return nil, apperrors.NewValidationError("job", "budget_max must not be below budget_min")
	}

	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *jobServiceImpl) DeleteJob(ctx context.Context, jobID, employerID string) error {
	job, err := s.findJob(jobID)
	if err != nil {
		return err
	}
	if job.EmployerID != employerID {
		return apperrors.NewForbiddenError("job", "only the job owner can delete it")
	}
	if err := s.jobs.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *jobServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("job", "job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}
