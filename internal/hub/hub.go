// Package hub tracks the sessions connected to a multi-user server.
//
// Games are independent per connection; the hub only counts them and
// delivers server-wide notices such as shutdown.
package hub

import (
	"context"
	"sync"
	"time"
)

// Notice is a server-wide message delivered to every session.
type Notice int

const (
	NoticeShutdown Notice = iota
)

// Handle is one registered session.
type Handle struct {
	ID       int
	Username string
	Notices  chan Notice
	Joined   time.Time
}

// Hub is safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	closed  bool
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
	}
}

// Register adds a session. After Shutdown has begun, new sessions get the
// shutdown notice immediately.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		Notices:  make(chan Notice, 4),
		Joined:   time.Now(),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	if h.closed {
		handle.Notices <- NoticeShutdown
	}
	return handle
}

// Unregister removes a session. Unknown IDs are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Players returns the number of connected sessions.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every session and waits until all have unregistered or
// ctx is done. Returns the number of sessions still connected.
func (h *Hub) Shutdown(ctx context.Context) int {
	h.mu.Lock()
	h.closed = true
	for _, handle := range h.clients {
		select {
		case handle.Notices <- NoticeShutdown:
		default:
		}
	}
	h.mu.Unlock()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if remaining := h.Players(); remaining == 0 {
			return 0
		}
		select {
		case <-ctx.Done():
			return h.Players()
		case <-ticker.C:
		}
	}
}
