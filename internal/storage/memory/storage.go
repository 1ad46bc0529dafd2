package memory

import (
	"context"
	"sync"

	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Suitable for a single-process deployment and for tests; expiry is
// enforced by the auth service rather than by TTL.
type Storage struct {
	mu sync.RWMutex

	sessions   map[string]*model.Session
	gameStates map[string]*model.GameState
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:   make(map[string]*model.Session),
		gameStates: make(map[string]*model.GameState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Game state operations

func (s *Storage) SaveGameState(ctx context.Context, token string, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameStates[token] = state
	return nil
}

func (s *Storage) GetGameState(ctx context.Context, token string) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.gameStates[token]
	if !ok {
		return nil, model.ErrGameStateNotFound
	}
	return state, nil
}

func (s *Storage) DeleteGameState(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gameStates, token)
	return nil
}
