package board

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pillboard/pillboard/internal/auth"
	"github.com/pillboard/pillboard/internal/shape"
	"github.com/pillboard/pillboard/internal/typeid"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("forbidden")
)

// Board is the registry's view of a canvas. Everything lives in memory; a
// board and its shapes exist exactly as long as the process does.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Protected bool      `json:"protected"`
	CreatedAt time.Time `json:"createdAt"`
}

type record struct {
	board          Board
	passphraseHash string // empty for open boards
}

// Service is the in-memory board registry.
type Service struct {
	mu     sync.RWMutex
	boards map[string]*record
	auth   *auth.Service
	hub    *Hub
}

func NewService(authSvc *auth.Service, hub *Hub) *Service {
	return &Service{
		boards: make(map[string]*record),
		auth:   authSvc,
		hub:    hub,
	}
}

// CreateResult pairs a fresh board with its creator's owner token.
type CreateResult struct {
	Board Board  `json:"board"`
	Token string `json:"token"`
}

func (s *Service) Create(name, passphrase, displayName string) (*CreateResult, error) {
	boardID := typeid.NewBoardID()

	var hash string
	if passphrase != "" {
		var err error
		hash, err = auth.HashPassphrase(passphrase)
		if err != nil {
			return nil, err
		}
	}

	b := Board{
		ID:        boardID,
		Name:      name,
		Protected: hash != "",
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.boards[boardID] = &record{board: b, passphraseHash: hash}
	s.mu.Unlock()

	// Warm the session so the board holds state before anyone connects.
	s.hub.Session(boardID)

	token, err := s.auth.IssueBoardToken(boardID, displayName, auth.RoleOwner)
	if err != nil {
		return nil, err
	}

	return &CreateResult{Board: b, Token: token}, nil
}

func (s *Service) Get(boardID string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.boards[boardID]
	if !ok {
		return nil, ErrNotFound
	}
	b := rec.board
	return &b, nil
}

func (s *Service) List() []Board {
	s.mu.RLock()
	boards := make([]Board, 0, len(s.boards))
	for _, rec := range s.boards {
		boards = append(boards, rec.board)
	}
	s.mu.RUnlock()

	sort.Slice(boards, func(i, j int) bool {
		if !boards[i].CreatedAt.Equal(boards[j].CreatedAt) {
			return boards[i].CreatedAt.Before(boards[j].CreatedAt)
		}
		return boards[i].ID < boards[j].ID
	})
	return boards
}

// Join checks the passphrase (if the board has one) and issues an editor
// token.
func (s *Service) Join(boardID, passphrase, displayName string) (string, error) {
	s.mu.RLock()
	rec, ok := s.boards[boardID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}

	if rec.passphraseHash != "" {
		if err := auth.CheckPassphrase(rec.passphraseHash, passphrase); err != nil {
			return "", err
		}
	}

	return s.auth.IssueBoardToken(boardID, displayName, auth.RoleEditor)
}

// Delete removes a board and tears down its session. Owner only.
func (s *Service) Delete(boardID string, grant *auth.Grant) error {
	if grant == nil || grant.BoardID != boardID || grant.Role != auth.RoleOwner {
		return ErrForbidden
	}

	s.mu.Lock()
	_, ok := s.boards[boardID]
	delete(s.boards, boardID)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.hub.Close(boardID)
	return nil
}

// Shapes returns the board's current collection, the read-only export
// surface.
func (s *Service) Shapes(boardID string) ([]shape.Shape, error) {
	s.mu.RLock()
	_, ok := s.boards[boardID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.hub.Session(boardID).Snapshot().Shapes, nil
}

// AuthorizeConn decides whether a websocket connection may join a board.
// Open boards admit anonymous clients; protected boards require a token
// covering this board. Returns the display name to use.
func (s *Service) AuthorizeConn(boardID, token string) (string, error) {
	s.mu.RLock()
	rec, ok := s.boards[boardID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}

	if rec.passphraseHash == "" && token == "" {
		return "Anonymous", nil
	}

	grant, err := s.auth.ValidateToken(token)
	if err != nil || grant.BoardID != boardID {
		return "", ErrForbidden
	}
	name := grant.DisplayName
	if name == "" {
		name = "Anonymous"
	}
	return name, nil
}
