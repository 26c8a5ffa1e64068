package repositories

import (
	"errors"

	"jobsoko_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("worker already applied to this job")
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindByJob(jobID string) ([]models.Application, error)
	FindByWorker(workerID string) ([]models.Application, error)
	FindByJobAndWorker(jobID, workerID string) (*models.Application, error)
	UpdateStatus(applicationID string, status models.ApplicationStatus) error
	Delete(id string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	var existing models.Application
	err := r.db.Where("job_id = ? AND worker_id = ?", application.JobID, application.WorkerID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyApplied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.Preload("Worker").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Worker").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByWorker(workerID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByJobAndWorker(jobID, workerID string) (*models.Application, error) {
	var application models.Application
	err := r.db.Where("job_id = ? AND worker_id = ?", jobID, workerID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(applicationID string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", applicationID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
