package board

import (
	"sync"

	"github.com/pillboard/pillboard/internal/engine"
)

// Hub owns the live sessions, one per board.
type Hub struct {
	mu       sync.RWMutex
	rules    engine.Rules
	sessions map[string]*Session
}

func NewHub(rules engine.Rules) *Hub {
	return &Hub{
		rules:    rules,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for a board, creating it on first use.
func (h *Hub) Session(boardID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[boardID]
	if !ok {
		s = newSession(boardID, h.rules)
		h.sessions[boardID] = s
	}
	return s
}

// Close stops and removes a board's session, disconnecting its clients.
func (h *Hub) Close(boardID string) {
	h.mu.Lock()
	s, ok := h.sessions[boardID]
	delete(h.sessions, boardID)
	h.mu.Unlock()
	if ok {
		s.Stop()
	}
}

// Stop shuts down every session. Used on server shutdown.
func (h *Hub) Stop() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
