// internal/game/game.go
package game

// InitialMax is the inclusive upper bound of the first roll.
const InitialMax = 1000

// MaxPlayers is the number of players a match holds once it starts.
const MaxPlayers = 2

// Roller produces a uniformly distributed integer in [1, max], max >= 1.
// Production uses internal/dice; tests inject fixed or sequenced values.
type Roller interface {
	RollInRange(max int) int
}

// Game is the durable aggregate for one match. Fields are exported for JSON
// persistence, but every transition must go through the methods below so the
// status invariants hold: TurnIndex always indexes Players, Players never
// exceeds MaxPlayers, and a PlayerLost status is terminal.
type Game struct {
	ID         GameID     `json:"id"`
	Players    []PlayerID `json:"players"`
	CurrentMax int        `json:"current_max"`
	TurnIndex  int        `json:"turn_index"`
	Status     GameStatus `json:"status"`
}

// New creates a game with the host as its sole player, waiting for an
// opponent.
func New(hostID PlayerID) *Game {
	return &Game{
		ID:         NewGameID(),
		Players:    []PlayerID{hostID},
		CurrentMax: InitialMax,
		TurnIndex:  0,
		Status:     WaitingForPlayers(),
	}
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() (PlayerID, bool) {
	if g.TurnIndex < 0 || g.TurnIndex >= len(g.Players) {
		return PlayerID{}, false
	}
	return g.Players[g.TurnIndex], true
}

// HasPlayer reports whether id is a member of the game.
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Join appends a player; the second join starts the game. Join order is turn
// order. Callers are responsible for not joining an id that is already
// present.
func (g *Game) Join(playerID PlayerID) error {
	switch g.Status.Kind {
	case StatusWaitingForPlayers:
	case StatusInProgress, StatusPausedForReconnect, StatusPlayerLost:
		return ErrGameFull
	default:
		return ErrGameFull
	}

	g.Players = append(g.Players, playerID)
	if len(g.Players) == MaxPlayers {
		g.Status = InProgress()
	}
	return nil
}

// Reconnect resumes a paused game for the player whose disconnect paused it.
// Any other player on a paused game is rejected. Reconnecting to a running
// game is an idempotent success.
func (g *Game) Reconnect(playerID PlayerID) error {
	switch g.Status.Kind {
	case StatusPausedForReconnect:
		if g.Status.PlayerID != playerID {
			return ErrGameFull
		}
		g.Status = InProgress()
		return nil
	case StatusInProgress:
		return nil
	case StatusWaitingForPlayers, StatusPlayerLost:
		return ErrGamePaused
	default:
		return ErrGamePaused
	}
}

// Pause suspends a running game after disconnectedPlayer dropped. Only that
// player's reconnect resumes it.
func (g *Game) Pause(disconnectedPlayer PlayerID) error {
	switch g.Status.Kind {
	case StatusInProgress:
		g.Status = PausedForReconnect(disconnectedPlayer)
		return nil
	case StatusWaitingForPlayers, StatusPausedForReconnect, StatusPlayerLost:
		return ErrGameFinished
	default:
		return ErrGameFinished
	}
}

// Roll executes the acting player's turn: draw a value in [1, CurrentMax],
// then either end the game (a 1 eliminates the actor) or tighten the bound
// to the rolled value and rotate the turn. The returned events describe
// exactly what happened: always a Rolled event, followed by a GameOver event
// when the roll ended the game.
func (g *Game) Roll(playerID PlayerID, roller Roller) ([]Event, error) {
	switch g.Status.Kind {
	case StatusInProgress:
	case StatusWaitingForPlayers:
		return nil, ErrNotEnoughPlayers
	case StatusPausedForReconnect:
		return nil, ErrGamePaused
	case StatusPlayerLost:
		return nil, ErrGameFinished
	default:
		return nil, ErrGameFinished
	}

	current, ok := g.CurrentPlayer()
	if !ok || current != playerID {
		return nil, ErrNotYourTurn
	}

	value := roller.RollInRange(g.CurrentMax)
	events := []Event{Rolled{PlayerID: playerID, Value: value}}

	if value == 1 {
		g.Status = PlayerLost(playerID)
		// The winner is the other player. Falling back to the actor only
		// covers the degenerate single-player case, which a started game
		// never has.
		winner := playerID
		for _, p := range g.Players {
			if p != playerID {
				winner = p
				break
			}
		}
		events = append(events, GameOver{WinnerID: winner, LoserID: playerID})
		return events, nil
	}

	g.CurrentMax = value
	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
	return events, nil
}
