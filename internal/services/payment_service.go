package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/mpesa"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type PaymentService interface {
	// InitiatePayment sends an STK push to the employer's phone for a
	// job and records the pending transaction.
	InitiatePayment(ctx context.Context, userID string, req *dto.STKPushRequest) (*dto.STKPushResponse, error)

	// HandleCallback settles a pending transaction from the Daraja
	// result callback. Unknown checkout ids are ignored.
	HandleCallback(ctx context.Context, callback *dto.MpesaCallback) error

	ListUserPayments(ctx context.Context, userID string) ([]models.PaymentTransaction, error)

	// PayWorker sends a B2C payout to the assigned worker of a
	// completed job.
	PayWorker(ctx context.Context, employerID, jobID string, amount float64) error
}

type paymentServiceImpl struct {
	payments repositories.PaymentRepository
	jobs     repositories.JobRepository
	users    repositories.UserRepository
	gateway  mpesa.Gateway
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	gateway mpesa.Gateway,
) PaymentService {
	return &paymentServiceImpl{payments: payments, jobs: jobs, users: users, gateway: gateway}
}

func (s *paymentServiceImpl) InitiatePayment(ctx context.Context, userID string, req *dto.STKPushRequest) (*dto.STKPushResponse, error) {
	job, err := s.jobs.FindByID(req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != userID {
		return nil, apperrors.NewForbiddenError("payment", "only the job owner can pay for it")
	}

	push, err := s.gateway.STKPush(&mpesa.STKPushRequest{
		PhoneNumber: normalizePhone(req.PhoneNumber),
		Amount:      req.Amount,
		AccountRef:  job.ID,
		Description: fmt.Sprintf("Payment for %s", job.Title),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "payment", "payment gateway request failed", http.StatusBadGateway)
	}

	transaction := &models.PaymentTransaction{
		UserID:            userID,
		JobID:             job.ID,
		Amount:            req.Amount,
		PhoneNumber:       req.PhoneNumber,
		Status:            models.PaymentStatusPending,
		CheckoutRequestID: push.CheckoutRequestID,
		MerchantRequestID: push.MerchantRequestID,
	}
	if err := s.payments.Create(transaction); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "stk push initiated",
		"job_id", job.ID, "checkout_request_id", push.CheckoutRequestID)

	return &dto.STKPushResponse{
		TransactionID:     transaction.ID,
		CheckoutRequestID: push.CheckoutRequestID,
		CustomerMessage:   push.CustomerMessage,
	}, nil
}

func (s *paymentServiceImpl) HandleCallback(ctx context.Context, callback *dto.MpesaCallback) error {
	cb := callback.Body.StkCallback

	transaction, err := s.payments.FindByCheckoutID(cb.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			logger.CtxWarn(ctx, "callback for unknown checkout id",
				"checkout_request_id", cb.CheckoutRequestID)
			return nil
		}
		return apperrors.InternalError(err)
	}
	if transaction.Status != models.PaymentStatusPending {
		// Daraja retries callbacks; settled transactions stay settled.
		return nil
	}

	if cb.ResultCode == 0 {
		if err := s.payments.MarkPaid(transaction.ID, callback.Receipt(), time.Now()); err != nil {
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "payment settled",
			"transaction_id", transaction.ID, "receipt", callback.Receipt())
		return nil
	}

	if err := s.payments.MarkFailed(transaction.ID, cb.ResultDesc); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "payment failed",
		"transaction_id", transaction.ID, "reason", cb.ResultDesc)
	return nil
}

func (s *paymentServiceImpl) ListUserPayments(ctx context.Context, userID string) ([]models.PaymentTransaction, error) {
	payments, err := s.payments.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *paymentServiceImpl) PayWorker(ctx context.Context, employerID, jobID string, amount float64) error {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.NewNotFoundError("payment", "job not found")
		}
		return apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return apperrors.NewForbiddenError("payment", "only the job owner can pay the worker")
	}
	if job.WorkerID == nil {
		return apperrors.NewValidationError("payment", "job has no assigned worker")
	}

	worker, err := s.users.FindByID(*job.WorkerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if worker.Phone == "" {
		return apperrors.NewValidationError("payment", "worker has no phone number on file")
	}

	_, err = s.gateway.B2CPayment(&mpesa.B2CRequest{
		PhoneNumber: normalizePhone(worker.Phone),
		Amount:      amount,
		Remarks:     fmt.Sprintf("Payout for %s", job.Title),
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "payment", "payout request failed", http.StatusBadGateway)
	}
	return nil
}

// normalizePhone converts +2547XXXXXXXX and 07XXXXXXXX forms to the
// 2547XXXXXXXX format Daraja expects.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "0") {
		phone = "254" + phone[1:]
	}
	return phone
}
