// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/jason-s-yu/deathroll/internal/game"
)

// ErrGameNotFound is returned by Load when no record exists for the id.
var ErrGameNotFound = errors.New("game not found")

// GameRepository persists the Game aggregate. Save is an upsert keyed by
// Game.ID; implementations apply their retention policy on every write, so
// saving also refreshes it. Load distinguishes a missing key
// (ErrGameNotFound) from any other store failure.
type GameRepository interface {
	Load(ctx context.Context, id game.GameID) (*game.Game, error)
	Save(ctx context.Context, g *game.Game) error
}
