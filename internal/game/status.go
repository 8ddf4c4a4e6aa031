// internal/game/status.go
package game

import (
	"encoding/json"
	"fmt"
)

// StatusKind enumerates the lifecycle states of a game.
type StatusKind string

const (
	StatusWaitingForPlayers  StatusKind = "WAITING_FOR_PLAYERS"
	StatusInProgress         StatusKind = "IN_PROGRESS"
	StatusPausedForReconnect StatusKind = "PAUSED_FOR_RECONNECT"
	StatusPlayerLost         StatusKind = "PLAYER_LOST"
)

// GameStatus is a tagged value. PausedForReconnect and PlayerLost carry the
// player the state refers to (the disconnected player and the loser); the
// PlayerID field is the zero id for the other kinds. GameStatus is
// comparable, so constructed values can be checked with ==.
type GameStatus struct {
	Kind     StatusKind
	PlayerID PlayerID
}

// WaitingForPlayers is the state of a game with only its host.
func WaitingForPlayers() GameStatus {
	return GameStatus{Kind: StatusWaitingForPlayers}
}

// InProgress is the state of a running two-player game.
func InProgress() GameStatus {
	return GameStatus{Kind: StatusInProgress}
}

// PausedForReconnect is the state after playerID disconnected mid-game. Only
// that player can resume it.
func PausedForReconnect(playerID PlayerID) GameStatus {
	return GameStatus{Kind: StatusPausedForReconnect, PlayerID: playerID}
}

// PlayerLost is the terminal state after playerID rolled a 1.
func PlayerLost(playerID PlayerID) GameStatus {
	return GameStatus{Kind: StatusPlayerLost, PlayerID: playerID}
}

func (s GameStatus) String() string {
	switch s.Kind {
	case StatusPausedForReconnect, StatusPlayerLost:
		return fmt.Sprintf("%s(%s)", s.Kind, s.PlayerID)
	default:
		return string(s.Kind)
	}
}

type statusJSON struct {
	Kind     StatusKind `json:"kind"`
	PlayerID PlayerID   `json:"player_id,omitzero"`
}

// MarshalJSON encodes the status as {"kind": ..., "player_id": ...} with the
// player id omitted for kinds that carry none.
func (s GameStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusJSON{Kind: s.Kind, PlayerID: s.PlayerID})
}

// UnmarshalJSON decodes and validates the tagged form: unknown kinds are
// rejected, and kinds that carry a player require one.
func (s *GameStatus) UnmarshalJSON(data []byte) error {
	var raw statusJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case StatusWaitingForPlayers, StatusInProgress:
	case StatusPausedForReconnect, StatusPlayerLost:
		if raw.PlayerID.IsZero() {
			return fmt.Errorf("game status %s requires a player_id", raw.Kind)
		}
	default:
		return fmt.Errorf("unknown game status kind %q", raw.Kind)
	}
	s.Kind = raw.Kind
	s.PlayerID = raw.PlayerID
	return nil
}
