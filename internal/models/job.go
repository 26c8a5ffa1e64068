package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	EmployerID     string         `gorm:"not null;index" json:"employer_id"`
	WorkerID       *string        `gorm:"index" json:"worker_id,omitempty"` // set when an applicant is accepted
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       string         `json:"category"`
	Location       string         `json:"location"`
	BudgetMin      float64        `json:"budget_min"`
	BudgetMax      float64        `json:"budget_max"`
	RequiredSkills datatypes.JSON `gorm:"type:jsonb" json:"required_skills,omitempty"` // ["plumbing", "wiring"]
	Deadline       *time.Time     `json:"deadline,omitempty"`
	Status         JobStatus      `gorm:"type:varchar(20);default:'open'" json:"status"`
	Views          int            `json:"views"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

// IsParticipant reports whether userID may exchange messages scoped to this
// job: the employer, or the worker of any application. Applications must
// already be loaded.
func (j *Job) IsParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	if j.EmployerID == userID {
		return true
	}
	for _, app := range j.Applications {
		if app.WorkerID == userID {
			return true
		}
	}
	return false
}
