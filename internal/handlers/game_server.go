// internal/handlers/game_server.go
package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/deathroll/internal/dice"
	"github.com/jason-s-yu/deathroll/internal/game"
	"github.com/jason-s-yu/deathroll/internal/session"
	"github.com/jason-s-yu/deathroll/internal/store"
)

// GameServer bundles the collaborators every game handler needs: the durable
// repository, the process-local session registry, the dice roller and the
// per-game command lock.
type GameServer struct {
	Repo     store.GameRepository
	Sessions *session.Registry
	Roller   game.Roller
	Logger   *logrus.Logger

	locks *gameLocks
}

// NewGameServer wires a GameServer. A nil roller gets a clock-seeded dice
// roller; a nil logger gets a default logrus logger.
func NewGameServer(repo store.GameRepository, sessions *session.Registry, roller game.Roller, logger *logrus.Logger) *GameServer {
	if roller == nil {
		roller = dice.New(nil)
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &GameServer{
		Repo:     repo,
		Sessions: sessions,
		Roller:   roller,
		Logger:   logger,
		locks:    newGameLocks(),
	}
}

// Register mounts the game routes on the router.
func (s *GameServer) Register(r chi.Router) {
	r.Post("/game", s.CreateGame)
	r.Get("/game/{id}", s.GetGame)
	r.Post("/game/{id}/join", s.JoinGame)
	r.Get("/ws/game/{id}", s.GameWS)
}
