package services

import (
	"context"
	"errors"
	"fmt"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type NotificationService interface {
	List(ctx context.Context, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)

	// Event factories. Failures are logged, never propagated: a lost
	// notification must not fail the operation that produced it.
	NotifyJobApplication(ctx context.Context, job *models.Job, workerID, workerName string)
	NotifyNewMessage(ctx context.Context, job *models.Job, msg *models.Message, senderName string)
	NotifyApplicationStatus(ctx context.Context, job *models.Job, workerID string, status models.ApplicationStatus)
}

type notificationServiceImpl struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &notificationServiceImpl{notifications: notifications}
}

func (s *notificationServiceImpl) List(ctx context.Context, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notifications.FindByUser(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notifications.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *dto.NewNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

// MarkRead flips a single notification to read. Re-reading an already
// read notification is a no-op, not an error. Another user's
// notification is reported as not found rather than forbidden so the
// response does not confirm the id exists.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.notifications.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.NewNotFoundError("notification", "notification not found")
	}
	if notification.IsRead {
		return nil
	}
	if err := s.notifications.MarkAsRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notifications.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notifications.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationServiceImpl) NotifyJobApplication(ctx context.Context, job *models.Job, workerID, workerName string) {
	s.create(ctx, &models.Notification{
		UserID:   job.EmployerID,
		Type:     repositories.NotificationTypeJobApplication,
		Title:    "New application",
		Message:  fmt.Sprintf("%s applied to your job %q", workerName, job.Title),
		JobID:    &job.ID,
		SenderID: &workerID,
	})
}

func (s *notificationServiceImpl) NotifyNewMessage(ctx context.Context, job *models.Job, msg *models.Message, senderName string) {
	s.create(ctx, &models.Notification{
		UserID:   msg.RecipientID,
		Type:     repositories.NotificationTypeNewMessage,
		Title:    "New message",
		Message:  fmt.Sprintf("%s sent you a message about %q", senderName, job.Title),
		JobID:    &job.ID,
		SenderID: &msg.SenderID,
	})
}

func (s *notificationServiceImpl) NotifyApplicationStatus(ctx context.Context, job *models.Job, workerID string, status models.ApplicationStatus) {
	s.create(ctx, &models.Notification{
		UserID:   workerID,
		Type:     repositories.NotificationTypeStatusUpdate,
		Title:    "Application update",
		Message:  fmt.Sprintf("Your application for %q was %s", job.Title, status),
		JobID:    &job.ID,
		SenderID: &job.EmployerID,
	})
}

func (s *notificationServiceImpl) create(ctx context.Context, n *models.Notification) {
	if err := s.notifications.Create(n); err != nil {
		logger.CtxWarn(ctx, "failed to create notification",
			"error", err, "user_id", n.UserID, "type", n.Type)
	}
}
