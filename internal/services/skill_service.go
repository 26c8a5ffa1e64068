package services

import (
	"context"
	"errors"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type SkillService interface {
	AddSkill(ctx context.Context, workerID string, req *dto.CreateSkillRequest) (*models.Skill, error)
	ListWorkerSkills(ctx context.Context, workerID string) ([]models.Skill, error)
	SearchSkills(ctx context.Context, criteria repositories.SkillCriteria) ([]models.Skill, int64, error)
	UpdateSkill(ctx context.Context, skillID, workerID string, req *dto.UpdateSkillRequest) (*models.Skill, error)
	RemoveSkill(ctx context.Context, skillID, workerID string) error
}

type skillServiceImpl struct {
	skills repositories.SkillRepository
}

func NewSkillService(skills repositories.SkillRepository) SkillService {
	return &skillServiceImpl{skills: skills}
}

func (s *skillServiceImpl) AddSkill(ctx context.Context, workerID string, req *dto.CreateSkillRequest) (*models.Skill, error) {
	skill := &models.Skill{
		WorkerID:    workerID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
	}
	if err := s.skills.Create(skill); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skill, nil
}

func (s *skillServiceImpl) ListWorkerSkills(ctx context.Context, workerID string) ([]models.Skill, error) {
	skills, err := s.skills.FindByWorker(workerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skills, nil
}

func (s *skillServiceImpl) SearchSkills(ctx context.Context, criteria repositories.SkillCriteria) ([]models.Skill, int64, error) {
	skills, total, err := s.skills.FindWithFilter(criteria)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return skills, total, nil
}

func (s *skillServiceImpl) UpdateSkill(ctx context.Context, skillID, workerID string, req *dto.UpdateSkillRequest) (*models.Skill, error) {
	skill, err := s.findOwnedSkill(skillID, workerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.HourlyRate != nil {
		skill.HourlyRate = *req.HourlyRate
	}

	if err := s.skills.Update(skill); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skill, nil
}

func (s *skillServiceImpl) RemoveSkill(ctx context.Context, skillID, workerID string) error {
	if _, err := s.findOwnedSkill(skillID, workerID); err != nil {
		return err
	}
	if err := s.skills.Delete(skillID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *skillServiceImpl) findOwnedSkill(skillID, workerID string) (*models.Skill, error) {
	skill, err := s.skills.FindByID(skillID)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			return nil, apperrors.NewNotFoundError("skill", "skill not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if skill.WorkerID != workerID {
		return nil, apperrors.NewForbiddenError("skill", "skill belongs to another worker")
	}
	return skill, nil
}
