package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services"
)

type NotificationHandler struct {
	*BaseHandler
	notifications services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/unread-count", h.UnreadCount)
	r.PUT("/:id/read", h.MarkRead)
	r.PUT("/read-all", h.MarkAllRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)
	criteria := repositories.NotificationCriteria{
		Type:       c.Query("type"),
		UnreadOnly: c.Query("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	}
	resp, err := h.notifications.List(c.Request.Context(), userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
