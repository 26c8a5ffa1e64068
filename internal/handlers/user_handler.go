package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	users services.UserService
}

func NewUserHandler(base *BaseHandler, users services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.GetProfile)
	r.PUT("/me", h.UpdateProfile)
	r.DELETE("/me", h.DeleteAccount)
	r.GET("/:id", h.GetPublicProfile)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	profile, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.users.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	profile, err := h.users.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
