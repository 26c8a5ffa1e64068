package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

type PaymentHandler struct {
	*BaseHandler
	payments services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, payments: payments}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/mine", h.ListMine)

	employerOnly := r.Group("", middleware.RequireRoles(models.UserRoleEmployer))
	employerOnly.POST("/stk-push", h.InitiatePayment)
	employerOnly.POST("/jobs/:id/payout", h.PayWorker)
}

// RegisterCallbackRoutes mounts the Daraja callback outside the auth
// middleware; Safaricom calls it without a bearer token.
func (h *PaymentHandler) RegisterCallbackRoutes(r *gin.RouterGroup) {
	r.POST("/payments/callback", h.Callback)
}

func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.STKPushRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.payments.InitiatePayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// Callback always answers 200: Daraja treats anything else as a
// delivery failure and retries, and there is nothing a retry can fix
// for a malformed body.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var callback dto.MpesaCallback
	if err := c.ShouldBindJSON(&callback); err != nil {
		logger.CtxWarn(c.Request.Context(), "malformed mpesa callback", "error", err)
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
		return
	}
	if err := h.payments.HandleCallback(c.Request.Context(), &callback); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to process mpesa callback", err)
	}
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	payments, err := h.payments.ListUserPayments(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *PaymentHandler) PayWorker(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.payments.PayWorker(c.Request.Context(), userID, c.Param("id"), req.Amount); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "payout initiated"})
}
