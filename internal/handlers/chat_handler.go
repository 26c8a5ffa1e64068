package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chat services.ChatService
}

func NewChatHandler(base *BaseHandler, chat services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chat: chat}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/messages", h.SendMessage)
	r.GET("/conversations", h.ListConversations)
	r.GET("/jobs/:id/thread/:userID", h.ListThread)
	r.GET("/messages/unread-count", h.UnreadCount)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	message, err := h.chat.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// ListThread returns the history with one counterparty on one job.
// Fetching the thread marks the caller's unread messages in it as read.
func (h *ChatHandler) ListThread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	messages, err := h.chat.ListThread(c.Request.Context(), c.Param("id"), userID, c.Param("userID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	conversations, err := h.chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	count, err := h.chat.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
