// internal/game/events.go
package game

// Event is a discrete notification produced by a state transition. The
// connection layer translates events to wire messages; the state machine
// itself performs no side effects, which is what keeps it unit-testable by
// asserting on the returned events alone.
type Event interface {
	isEvent()
}

// Rolled reports the value a player rolled.
type Rolled struct {
	PlayerID PlayerID
	Value    int
}

// GameOver reports the terminal outcome. Emitted at most once per game,
// immediately after the Rolled event for the losing roll.
type GameOver struct {
	WinnerID PlayerID
	LoserID  PlayerID
}

func (Rolled) isEvent()   {}
func (GameOver) isEvent() {}
