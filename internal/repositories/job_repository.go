package repositories

import (
	"errors"
	"time"

	"jobsoko_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	// FindByID loads the job together with its applications, so the
	// participant set is resolvable without a second query.
	FindByID(id string) (*models.Job, error)
	FindWithFilter(criteria JobCriteria) ([]models.Job, int64, error)
	FindByEmployer(employerID string) ([]models.Job, error)
	FindByWorker(workerID string) ([]models.Job, error)
	Update(job *models.Job) error
	UpdateStatus(jobID string, status models.JobStatus) error
	AssignWorker(jobID, workerID string) error
	IncrementViews(jobID string) error
	Delete(id string) error

	// Worker operations
	CloseExpired(now time.Time) (int64, error)
}

type JobCriteria struct {
	Category string           `form:"category"`
	Location string           `form:"location"`
	Status   models.JobStatus `form:"status"`
	Search   string           `form:"search"`
	Page     int              `form:"page" binding:"min=0"`
	PageSize int              `form:"page_size" binding:"min=0,max=100"`
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Applications").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(criteria JobCriteria) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	query := r.db.Model(&models.Job{})

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Location != "" {
		query = query.Where("location = ?", criteria.Location)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error

	return jobs, total, err
}

func (r *JobRepositoryImpl) FindByEmployer(employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Applications").
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByWorker(workerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) UpdateStatus(jobID string, status models.JobStatus) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", jobID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) AssignWorker(jobID, workerID string) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"worker_id": workerID,
			"status":    models.JobStatusAssigned,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementViews(jobID string) error {
	return r.db.Model(&models.Job{}).Where("id = ?", jobID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *JobRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// CloseExpired marks open jobs whose deadline has passed as expired.
func (r *JobRepositoryImpl) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.JobStatusOpen, now).
		Update("status", models.JobStatusExpired)
	return result.RowsAffected, result.Error
}
