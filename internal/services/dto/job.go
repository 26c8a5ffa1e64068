package dto

import (
	"time"

	"jobsoko_backend/internal/models"
)

type CreateJobRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Description    string     `json:"description" validate:"required,min=10"`
	Category       string     `json:"category" validate:"required"`
	Location       string     `json:"location" validate:"required"`
	BudgetMin      float64    `json:"budget_min" validate:"min=0"`
	BudgetMax      float64    `json:"budget_max" validate:"min=0,gtefield=BudgetMin"`
	RequiredSkills []string   `json:"required_skills,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

type UpdateJobRequest struct {
	Title          *string           `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string           `json:"description,omitempty" validate:"omitempty,min=10"`
	Category       *string           `json:"category,omitempty"`
	Location       *string           `json:"location,omitempty"`
	BudgetMin      *float64          `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax      *float64          `json:"budget_max,omitempty" validate:"omitempty,min=0"`
	RequiredSkills []string          `json:"required_skills,omitempty"`
	Deadline       *time.Time        `json:"deadline,omitempty"`
	Status         *models.JobStatus `json:"status,omitempty" validate:"omitempty,oneof=open assigned completed expired"`
}

type JobListResponse struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}
