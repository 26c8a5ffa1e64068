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

type JobHandler struct {
	*BaseHandler
	jobs services.JobService
}

func NewJobHandler(base *BaseHandler, jobs services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListJobs)
	r.GET("/:id", h.GetJob)
	r.GET("/mine", h.ListMine)

	employerOnly := r.Group("", middleware.RequireRoles(models.UserRoleEmployer))
	employerOnly.POST("", h.CreateJob)
	employerOnly.PUT("/:id", h.UpdateJob)
	employerOnly.DELETE("/:id", h.DeleteJob)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobs.CreateJob(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	criteria := repositories.JobCriteria{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Status:   models.JobStatus(c.Query("status")),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	resp, err := h.jobs.ListJobs(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the caller's jobs: posted jobs for employers,
// assigned jobs for workers.
func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var (
		jobs []models.Job
		err  error
	)
	if role, _ := c.Get("role"); role == string(models.UserRoleEmployer) {
		jobs, err = h.jobs.ListEmployerJobs(c.Request.Context(), userID)
	} else {
		jobs, err = h.jobs.ListWorkerJobs(c.Request.Context(), userID)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobs.UpdateJob(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.jobs.DeleteJob(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
