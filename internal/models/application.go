package models

type Application struct {
	BaseModel
	JobID        string            `gorm:"not null;index:idx_applications_job_worker,unique" json:"job_id"`
	WorkerID     string            `gorm:"not null;index:idx_applications_job_worker,unique" json:"worker_id"`
	CoverLetter  string            `gorm:"type:text" json:"cover_letter"`
	ProposedRate float64           `json:"proposed_rate"`
	Status       ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	Worker *User `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
