package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/services"
	"jobsoko_backend/internal/services/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBufferSize = 256
)

// IncomingMessage is the client-to-server frame: an action name plus an
// action-specific payload.
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan any

	ctx     context.Context
	manager *Manager
	chat    services.ChatService
}

func NewClient(ctx context.Context, userID string, conn *websocket.Conn, manager *Manager, chat services.ChatService) *Client {
	return &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan any, sendBufferSize),
		ctx:     ctx,
		manager: manager,
		chat:    chat,
	}
}

// trySend queues an event without blocking. Callers hold the manager
// lock, so a slow consumer must never stall the send.
func (c *Client) trySend(event any) {
	select {
	case c.Send <- event:
	default:
		logger.Warn("ws send buffer full, dropping event", "user_id", c.UserID)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "error", err, "user_id", c.UserID)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.trySend(errorEvent("invalid frame"))
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case "join_room":
		var payload struct {
			JobID string `json:"job_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.JobID == "" {
			c.trySend(errorEvent("invalid join_room payload"))
			return
		}
		c.manager.JoinRoom(payload.JobID, c)

	case "leave_room":
		var payload struct {
			JobID string `json:"job_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.JobID == "" {
			c.trySend(errorEvent("invalid leave_room payload"))
			return
		}
		c.manager.LeaveRoom(payload.JobID, c)

	case "send_message":
		var req dto.SendMessageRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.trySend(errorEvent("invalid send_message payload"))
			return
		}
		if _, err := c.chat.SendMessage(c.ctx, c.UserID, &req); err != nil {
			c.trySend(errorEvent(err.Error()))
			return
		}
		// The fan-out delivers the created message back to the sender's
		// room; no separate ack frame.

	default:
		c.trySend(errorEvent("unknown action"))
	}
}

func errorEvent(message string) map[string]string {
	return map[string]string{"type": "error", "error": message}
}
