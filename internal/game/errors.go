// internal/game/errors.go
package game

// RuleError is a game-rule violation. Rule errors are recoverable and
// user-facing; infrastructure failures never use this type.
type RuleError string

// Error implements the error interface.
func (e RuleError) Error() string {
	return string(e)
}

const (
	ErrGameFull         RuleError = "game is full"
	ErrGamePaused       RuleError = "game is paused"
	ErrGameFinished     RuleError = "game is finished"
	ErrNotYourTurn      RuleError = "not your turn"
	ErrNotEnoughPlayers RuleError = "not enough players"
)
