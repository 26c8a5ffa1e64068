package dto

type ApplyRequest struct {
	CoverLetter  string  `json:"cover_letter" validate:"required,min=10"`
	ProposedRate float64 `json:"proposed_rate" validate:"min=0"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
