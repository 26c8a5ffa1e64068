package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

// Broadcaster pushes realtime events out to connected clients. Delivery
// is best-effort: a client that is offline or slow simply misses the
// event and catches up from the store on its next fetch.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event any)
	BroadcastToUser(userID string, event any)
}

// MessageEvent is the realtime envelope pushed on new messages.
type MessageEvent struct {
	Type    string               `json:"type"`
	Message *dto.MessageResponse `json:"message"`
}

type ChatService interface {
	// SendMessage validates, persists and fans out one message.
	SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)

	// ListThread returns the full history between the viewer and the
	// counterparty on one job, oldest first. Viewing marks the messages
	// addressed to the viewer as read.
	ListThread(ctx context.Context, jobID, viewerID, counterpartyID string) ([]dto.MessageResponse, error)

	// ListConversations builds the viewer's inbox: one row per
	// (job, counterparty) pair, newest activity first.
	ListConversations(ctx context.Context, viewerID string) ([]dto.ConversationResponse, error)

	UnreadCount(ctx context.Context, viewerID string) (int64, error)
}

type chatServiceImpl struct {
	messages      repositories.MessageRepository
	jobs          repositories.JobRepository
	users         repositories.UserRepository
	notifications NotificationService
	broadcaster   Broadcaster
}

func NewChatService(
	messages repositories.MessageRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	notifications NotificationService,
	broadcaster Broadcaster,
) ChatService {
	return &chatServiceImpl{
		messages:      messages,
		jobs:          jobs,
		users:         users,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("chat", "message content must not be empty")
	}
	if senderID == req.RecipientID {
		return nil, apperrors.NewValidationError("chat", "cannot message yourself")
	}

	job, err := s.findJob(req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsParticipant(senderID) {
		return nil, apperrors.NewForbiddenError("chat", "sender is not a participant of this job")
	}
	if !job.IsParticipant(req.RecipientID) {
		return nil, apperrors.NewForbiddenError("chat", "recipient is not a participant of this job")
	}

	message := &models.Message{
		JobID:       req.JobID,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMessageResponse(message)
	s.fanOut(ctx, job, resp)

	senderName := senderID
	if sender, err := s.users.FindByID(senderID); err == nil {
		senderName = sender.Name
	}
	s.notifications.NotifyNewMessage(ctx, job, message, senderName)

	return resp, nil
}

func (s *chatServiceImpl) ListThread(ctx context.Context, jobID, viewerID, counterpartyID string) ([]dto.MessageResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsParticipant(viewerID) {
		return nil, apperrors.NewForbiddenError("chat", "not a participant of this job")
	}
	if !job.IsParticipant(counterpartyID) {
		return nil, apperrors.NewForbiddenError("chat", "counterparty is not a participant of this job")
	}

	messages, err := s.messages.FindThread(jobID, viewerID, counterpartyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Viewing the thread is what consumes the unread state.
	if err := s.messages.MarkThreadRead(jobID, viewerID); err != nil {
		logger.CtxWarn(ctx, "failed to mark thread read", "error", err, "job_id", jobID)
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		m := dto.NewMessageResponse(&messages[i])
		if m.RecipientID == viewerID {
			m.Read = true
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *chatServiceImpl) ListConversations(ctx context.Context, viewerID string) ([]dto.ConversationResponse, error) {
	messages, err := s.messages.FindUserMessages(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	type pairKey struct {
		jobID        string
		counterparty string
	}

	// Messages arrive oldest first, so the last write per pair wins.
	grouped := make(map[pairKey]*dto.ConversationResponse)
	for i := range messages {
		m := &messages[i]
		counterparty := m.SenderID
		if m.SenderID == viewerID {
			counterparty = m.RecipientID
		}

		key := pairKey{jobID: m.JobID, counterparty: counterparty}
		conv, ok := grouped[key]
		if !ok {
			conv = &dto.ConversationResponse{
				JobID:          m.JobID,
				CounterpartyID: counterparty,
			}
			grouped[key] = conv
		}
		conv.LastMessage = m.Content
		conv.LastSenderID = m.SenderID
		conv.UpdatedAt = m.CreatedAt
		conv.MessageCount++
		if m.RecipientID == viewerID && !m.Read {
			conv.UnreadCount++
		}
	}

	// Enrich with job titles and counterparty names, one lookup per
	// distinct id. Pairs whose job or counterparty no longer resolves
	// are dropped from the inbox.
	jobTitles := make(map[string]string)
	userNames := make(map[string]string)

	out := make([]dto.ConversationResponse, 0, len(grouped))
	for key, conv := range grouped {
		title, ok := jobTitles[key.jobID]
		if !ok {
			job, err := s.jobs.FindByID(key.jobID)
			if err != nil {
				if errors.Is(err, repositories.ErrJobNotFound) {
					jobTitles[key.jobID] = ""
					continue
				}
				return nil, apperrors.InternalError(err)
			}
			title = job.Title
			jobTitles[key.jobID] = title
		}
		if title == "" {
			continue
		}

		name, ok := userNames[key.counterparty]
		if !ok {
			user, err := s.users.FindByID(key.counterparty)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					userNames[key.counterparty] = ""
					continue
				}
				return nil, apperrors.InternalError(err)
			}
			name = user.Name
			userNames[key.counterparty] = name
		}
		if name == "" {
			continue
		}

		conv.JobTitle = title
		conv.CounterpartyName = name
		out = append(out, *conv)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *chatServiceImpl) UnreadCount(ctx context.Context, viewerID string) (int64, error) {
	count, err := s.messages.CountUnread(viewerID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *chatServiceImpl) fanOut(ctx context.Context, job *models.Job, msg *dto.MessageResponse) {
	if s.broadcaster == nil {
		return
	}
	event := &MessageEvent{Type: "new_message", Message: msg}
	s.broadcaster.BroadcastToRoom(job.ID, event)
	s.broadcaster.BroadcastToUser(msg.RecipientID, event)
}

func (s *chatServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}
