package ws

import (
	"sync"

	"jobsoko_backend/internal/logger"
)

// Manager owns every live websocket connection. State is guarded by a
// mutex instead of a run loop so broadcasts from request goroutines
// never queue behind connection churn.
//
// Clients are tracked twice: per user (a user may hold several tabs)
// and per job room (explicit join/leave). Both views point at the same
// Client values.
type Manager struct {
	mu          sync.RWMutex
	userClients map[string]map[*Client]struct{}
	rooms       map[string]map[*Client]struct{}
}

func NewManager() *Manager {
	return &Manager{
		userClients: make(map[string]map[*Client]struct{}),
		rooms:       make(map[string]map[*Client]struct{}),
	}
}

func (m *Manager) Register(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userClients[client.UserID] == nil {
		m.userClients[client.UserID] = make(map[*Client]struct{})
	}
	m.userClients[client.UserID][client] = struct{}{}

	logger.Debug("ws client registered", "user_id", client.UserID)
}

func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if clients, ok := m.userClients[client.UserID]; ok {
		if _, registered := clients[client]; registered {
			delete(clients, client)
			close(client.Send)
			if len(clients) == 0 {
				delete(m.userClients, client.UserID)
			}
		}
	}
	for roomID, members := range m.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}

	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

func (m *Manager) JoinRoom(roomID string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[*Client]struct{})
	}
	m.rooms[roomID][client] = struct{}{}
}

func (m *Manager) LeaveRoom(roomID string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if members, ok := m.rooms[roomID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}
}

// BroadcastToRoom pushes an event to every client joined to the room.
// A client whose send buffer is full is skipped; it recovers missed
// events from the store on its next fetch.
func (m *Manager) BroadcastToRoom(roomID string, event any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.rooms[roomID] {
		client.trySend(event)
	}
}

// BroadcastToUser pushes an event to every connection the user holds.
func (m *Manager) BroadcastToUser(userID string, event any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.userClients[userID] {
		client.trySend(event)
	}
}

func (m *Manager) IsUserConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.userClients[userID]) > 0
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, clients := range m.userClients {
		count += len(clients)
	}
	return count
}

func (m *Manager) RoomSize(roomID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[roomID])
}
