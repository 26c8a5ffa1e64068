package repositories

import (
	"errors"

	"jobsoko_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	Create(skill *models.Skill) error
	FindByID(id string) (*models.Skill, error)
	FindByWorker(workerID string) ([]models.Skill, error)
	FindWithFilter(criteria SkillCriteria) ([]models.Skill, int64, error)
	Update(skill *models.Skill) error
	Delete(id string) error
}

type SkillCriteria struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

type SkillRepositoryImpl struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &SkillRepositoryImpl{db: db}
}

func (r *SkillRepositoryImpl) Create(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

func (r *SkillRepositoryImpl) FindByID(id string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindByWorker(workerID string) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepositoryImpl) FindWithFilter(criteria SkillCriteria) ([]models.Skill, int64, error) {
	var skills []models.Skill
	var total int64

	query := r.db.Model(&models.Skill{})
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
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
		Find(&skills).Error

	return skills, total, err
}

func (r *SkillRepositoryImpl) Update(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

func (r *SkillRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Skill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}
