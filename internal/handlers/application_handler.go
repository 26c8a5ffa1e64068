package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applications services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applications services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applications: applications}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/jobs/:id/applications", middleware.RequireRoles(models.UserRoleWorker), h.Apply)
	r.GET("/jobs/:id/applications", middleware.RequireRoles(models.UserRoleEmployer), h.ListByJob)
	r.GET("/applications/mine", middleware.RequireRoles(models.UserRoleWorker), h.ListMine)
	r.PUT("/applications/:id/status", middleware.RequireRoles(models.UserRoleEmployer), h.UpdateStatus)
	r.DELETE("/applications/:id", middleware.RequireRoles(models.UserRoleWorker), h.Withdraw)
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	application, err := h.applications.Apply(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applications, err := h.applications.ListByJob(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applications, err := h.applications.ListByWorker(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	application, err := h.applications.UpdateStatus(
		c.Request.Context(), c.Param("id"), userID, models.ApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.applications.Withdraw(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
