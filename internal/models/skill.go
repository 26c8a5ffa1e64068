package models

type Skill struct {
	BaseModel
	WorkerID    string  `gorm:"not null;index" json:"worker_id"`
	Name        string  `gorm:"not null" json:"name"`
	Category    string  `json:"category"`
	Description string  `gorm:"type:text" json:"description"`
	HourlyRate  float64 `json:"hourly_rate"`
}
