package ws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, userID string) *Client {
	// No live connection: these tests exercise registration and fan-out
	// only, which never touch the socket.
	return NewClient(context.Background(), userID, nil, m, nil)
}

func drain(c *Client) []any {
	var events []any
	for {
		select {
		case e := <-c.Send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestRegisterUnregister(t *testing.T) {
	m := NewManager()
	c := newTestClient(m, "u1")

	m.Register(c)
	assert.True(t, m.IsUserConnected("u1"))
	assert.Equal(t, 1, m.ClientCount())

	m.Unregister(c)
	assert.False(t, m.IsUserConnected("u1"))
	assert.Equal(t, 0, m.ClientCount())

	// Closed on unregister.
	_, open := <-c.Send
	assert.False(t, open)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	m := NewManager()
	c := newTestClient(m, "u1")

	m.Register(c)
	m.Unregister(c)
	assert.NotPanics(t, func() { m.Unregister(c) })
}

func TestBroadcastToUserReachesAllConnections(t *testing.T) {
	m := NewManager()
	tab1 := newTestClient(m, "u1")
	tab2 := newTestClient(m, "u1")
	other := newTestClient(m, "u2")
	m.Register(tab1)
	m.Register(tab2)
	m.Register(other)

	m.BroadcastToUser("u1", "hello")

	assert.Len(t, drain(tab1), 1)
	assert.Len(t, drain(tab2), 1)
	assert.Empty(t, drain(other))
}

func TestRoomBroadcast(t *testing.T) {
	m := NewManager()
	a := newTestClient(m, "u1")
	b := newTestClient(m, "u2")
	c := newTestClient(m, "u3")
	m.Register(a)
	m.Register(b)
	m.Register(c)

	m.JoinRoom("job-1", a)
	m.JoinRoom("job-1", b)
	m.JoinRoom("job-2", c)
	require.Equal(t, 2, m.RoomSize("job-1"))

	m.BroadcastToRoom("job-1", "event")

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.Empty(t, drain(c))

	m.LeaveRoom("job-1", b)
	m.BroadcastToRoom("job-1", "event2")
	assert.Len(t, drain(a), 1)
	assert.Empty(t, drain(b))
}

func TestUnregisterLeavesRooms(t *testing.T) {
	m := NewManager()
	a := newTestClient(m, "u1")
	m.Register(a)
	m.JoinRoom("job-1", a)

	m.Unregister(a)
	assert.Equal(t, 0, m.RoomSize("job-1"))

	// Broadcast after unregister must not panic on the closed channel.
	assert.NotPanics(t, func() { m.BroadcastToRoom("job-1", "late") })
}

func TestFullBufferDropsEventInsteadOfBlocking(t *testing.T) {
	m := NewManager()
	a := newTestClient(m, "u1")
	m.Register(a)

	for i := 0; i < sendBufferSize+10; i++ {
		m.BroadcastToUser("u1", i)
	}

	// Exactly the buffer depth is retained; the rest were dropped.
	assert.Len(t, drain(a), sendBufferSize)
}
