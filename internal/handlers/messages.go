// internal/handlers/messages.go
package handlers

import (
	"encoding/json"

	"github.com/jason-s-yu/deathroll/internal/game"
)

// Client -> server message types.
const (
	ClientTypeConnect = "CONNECT"
	ClientTypeRoll    = "ROLL"
)

// Server -> client message types.
const (
	ServerTypeGameState    = "GAME_STATE"
	ServerTypeError        = "ERROR"
	ServerTypePlayerJoined = "PLAYER_JOINED"
	ServerTypeRollResult   = "ROLL_RESULT"
	ServerTypeGameStarted  = "GAME_STARTED"
	ServerTypeGameOver     = "GAME_OVER"
)

// ClientMessage is an inbound frame: {"type": ..., "payload": ...}. CONNECT
// carries a player_id payload but is a no-op, since the connection is bound
// to a player at admission; ROLL carries no payload.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is an outbound frame: {"type": ..., "payload": ...}.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ErrorPayload accompanies ERROR. Delivered privately to the player whose
// command was rejected.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PlayerJoinedPayload accompanies PLAYER_JOINED.
type PlayerJoinedPayload struct {
	PlayerID game.PlayerID `json:"player_id"`
}

// RollResultPayload accompanies ROLL_RESULT.
type RollResultPayload struct {
	PlayerID    game.PlayerID `json:"player_id"`
	RolledValue int           `json:"rolled_value"`
}

// GameStartedPayload accompanies GAME_STARTED, sent when the second player
// joins and the match begins.
type GameStartedPayload struct {
	Game *game.Game `json:"game"`
}

// GameOverPayload accompanies GAME_OVER.
type GameOverPayload struct {
	WinnerID game.PlayerID `json:"winner_id"`
	LoserID  game.PlayerID `json:"loser_id"`
}
