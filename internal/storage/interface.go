package storage

import (
	"context"

	"github.com/mfranke/numguess/internal/model"
)

// Storage defines the interface for ephemeral per-session state:
// authenticated sessions and the game state they scope. Users and
// scores live in the relational store, not here.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Game state operations, keyed by session token
	SaveGameState(ctx context.Context, token string, state *model.GameState) error
	GetGameState(ctx context.Context, token string) (*model.GameState, error)
	DeleteGameState(ctx context.Context, token string) error
}
