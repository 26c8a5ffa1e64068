package routes

import (
	"github.com/gin-gonic/gin"

	"jobsoko_backend/internal/handlers"
	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/ws"
)

// Register mounts every route of the API. Auth, the health probe and
// the payment-gateway callback are public; everything else sits behind
// the bearer-token middleware.
func Register(r *gin.Engine, h *handlers.AppHandlers, wsHandler *ws.Handler) {
	api := r.Group("/api/v1")

	h.Health.RegisterRoutes(api)
	h.Payment.RegisterCallbackRoutes(api)
	h.Auth.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("", middleware.AuthMiddleware())
	h.User.RegisterRoutes(authed.Group("/users"))
	h.Job.RegisterRoutes(authed.Group("/jobs"))
	h.Application.RegisterRoutes(authed)
	h.Chat.RegisterRoutes(authed)
	h.Notification.RegisterRoutes(authed.Group("/notifications"))
	h.Skill.RegisterRoutes(authed.Group("/skills"))
	h.Payment.RegisterRoutes(authed.Group("/payments"))
	wsHandler.RegisterRoutes(authed)
}
