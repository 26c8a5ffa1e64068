package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWSClientOutlivesRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager := NewManager()
	handler := NewHandler(manager, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	handler.RegisterRoutes(&r.RouterGroup)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return manager.IsUserConnected("u1")
	}, time.Second, 10*time.Millisecond)

	// The upgrade handler has long returned; the connection's context
	// must not die with the request it was born from.
	manager.mu.RLock()
	var client *Client
	for c := range manager.userClients["u1"] {
		client = c
	}
	manager.mu.RUnlock()
	require.NotNil(t, client)
	assert.NoError(t, client.ctx.Err())
}
