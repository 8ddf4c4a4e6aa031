// internal/game/ids.go
package game

import "github.com/google/uuid"

// GameID identifies one death-roll match. It serializes as the canonical
// UUID string and is comparable, so it can key maps directly.
type GameID struct {
	uuid.UUID
}

// NewGameID returns a fresh random id.
func NewGameID() GameID {
	return GameID{uuid.New()}
}

// ParseGameID parses the canonical string form.
func ParseGameID(s string) (GameID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return GameID{}, err
	}
	return GameID{id}, nil
}

// IsZero reports whether the id is the nil UUID. The zero id never identifies
// a real game.
func (id GameID) IsZero() bool {
	return id.UUID == uuid.Nil
}

// PlayerID identifies a player. Players carry no other identity: holding an
// id that appears in Game.Players is the only authorization the system knows.
type PlayerID struct {
	uuid.UUID
}

// NewPlayerID returns a fresh random id.
func NewPlayerID() PlayerID {
	return PlayerID{uuid.New()}
}

// ParsePlayerID parses the canonical string form.
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PlayerID{}, err
	}
	return PlayerID{id}, nil
}

// IsZero reports whether the id is the nil UUID.
func (id PlayerID) IsZero() bool {
	return id.UUID == uuid.Nil
}
