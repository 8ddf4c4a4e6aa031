// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"github.com/jason-s-yu/deathroll/internal/game"
)

// MemoryRepository is the in-memory GameRepository used by tests. It mirrors
// the Redis implementation's upsert semantics without expiry, and copies
// games on the way in and out so callers never alias stored state.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[game.GameID]*game.Game
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		games: make(map[game.GameID]*game.Game),
	}
}

// Load retrieves a copy of the game by id.
func (m *MemoryRepository) Load(_ context.Context, id game.GameID) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return cloneGame(g), nil
}

// Save upserts a copy of the game under its id.
func (m *MemoryRepository) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.games[g.ID] = cloneGame(g)
	return nil
}

func cloneGame(g *game.Game) *game.Game {
	cp := *g
	cp.Players = append([]game.PlayerID(nil), g.Players...)
	return &cp
}
