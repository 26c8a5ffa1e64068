package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/middleware"
	"jobsoko_backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is fixed.
		return true
	},
}

type Handler struct {
	manager *Manager
	chat    services.ChatService
}

func NewHandler(manager *Manager, chat services.ChatService) *Handler {
	return &Handler{manager: manager, chat: chat}
}

// ServeWS upgrades an authenticated request to a websocket connection.
// The route runs behind the auth middleware, so the user id comes from
// the verified token, never from the client.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err, "user_id", userID)
		return
	}

	// The request context dies once this handler returns, while the
	// connection lives on. Give the client its own background context.
	client := NewClient(context.Background(), userID, conn, h.manager, h.chat)
	h.manager.Register(client)

	go client.readPump()
	go client.writePump()
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.ServeWS)
}
