package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

type SkillHandler struct {
	*BaseHandler
	skills services.SkillService
}

func NewSkillHandler(base *BaseHandler, skills services.SkillService) *SkillHandler {
	return &SkillHandler{BaseHandler: base, skills: skills}
}

func (h *SkillHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Search)
	r.GET("/workers/:id", h.ListWorkerSkills)

	workerOnly := r.Group("", middleware.RequireRoles(models.UserRoleWorker))
	workerOnly.POST("", h.AddSkill)
	workerOnly.PUT("/:id", h.UpdateSkill)
	workerOnly.DELETE("/:id", h.RemoveSkill)
}

func (h *SkillHandler) AddSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSkillRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	skill, err := h.skills.AddSkill(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *SkillHandler) ListWorkerSkills(c *gin.Context) {
	skills, err := h.skills.ListWorkerSkills(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *SkillHandler) Search(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	criteria := repositories.SkillCriteria{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	skills, total, err := h.skills.SearchSkills(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills, "total": total})
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSkillRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	skill, err := h.skills.UpdateSkill(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) RemoveSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.skills.RemoveSkill(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
