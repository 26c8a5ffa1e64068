package models

import "time"

type PaymentTransaction struct {
	BaseModel
	UserID            string        `gorm:"not null;index" json:"user_id"`
	JobID             string        `gorm:"not null;index" json:"job_id"`
	Amount            float64       `gorm:"not null" json:"amount"`
	PhoneNumber       string        `gorm:"not null" json:"phone_number"`
	Status            PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CheckoutRequestID string        `gorm:"uniqueIndex" json:"checkout_request_id"` // same id passed to Daraja
	MerchantRequestID string        `json:"merchant_request_id"`
	MpesaReceipt      *string       `json:"mpesa_receipt,omitempty"`
	FailureReason     *string       `json:"failure_reason,omitempty"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
}
