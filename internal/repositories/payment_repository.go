package repositories

import (
	"errors"
	"time"

	"jobsoko_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment transaction not found")

type PaymentRepository interface {
	Create(transaction *models.PaymentTransaction) error
	FindByID(id string) (*models.PaymentTransaction, error)
	// FindByCheckoutID resolves the transaction referenced by a Daraja
	// callback.
	FindByCheckoutID(checkoutRequestID string) (*models.PaymentTransaction, error)
	FindByUser(userID string) ([]models.PaymentTransaction, error)
	MarkPaid(id, receipt string, paidAt time.Time) error
	MarkFailed(id, reason string) error
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(transaction *models.PaymentTransaction) error {
	return r.db.Create(transaction).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := r.db.First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PaymentRepositoryImpl) FindByCheckoutID(checkoutRequestID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := r.db.First(&transaction, "checkout_request_id = ?", checkoutRequestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PaymentRepositoryImpl) FindByUser(userID string) ([]models.PaymentTransaction, error) {
	var transactions []models.PaymentTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *PaymentRepositoryImpl) MarkPaid(id, receipt string, paidAt time.Time) error {
	result := r.db.Model(&models.PaymentTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.PaymentStatusPaid,
			"mpesa_receipt": receipt,
			"paid_at":       paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkFailed(id, reason string) error {
	result := r.db.Model(&models.PaymentTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
