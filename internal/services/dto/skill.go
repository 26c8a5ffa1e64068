package dto

type CreateSkillRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description,omitempty"`
	HourlyRate  float64 `json:"hourly_rate" validate:"min=0"`
}

type UpdateSkillRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
}
