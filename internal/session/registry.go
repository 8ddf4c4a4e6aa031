// internal/session/registry.go
package session

import (
	"sync"

	"github.com/jason-s-yu/deathroll/internal/game"
)

// sendBuffer is the per-player outbound queue depth. A consumer that falls
// further behind than this loses messages instead of stalling the command
// path that broadcast them.
const sendBuffer = 32

// Registry is the process-local map of live connections, keyed by game then
// player. Each registered player owns a channel its write pump drains.
//
// The registry is purely a delivery mechanism: membership truth lives in
// Game.Players, never here.
type Registry struct {
	mu       sync.RWMutex
	sessions map[game.GameID]map[game.PlayerID]chan []byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[game.GameID]map[game.PlayerID]chan []byte),
	}
}

// Register adds a player's connection and returns the channel its write pump
// must drain. Registering over an existing entry closes and replaces the old
// channel, so a reconnecting client supersedes a stale connection.
func (r *Registry) Register(gameID game.GameID, playerID game.PlayerID) chan []byte {
	ch := make(chan []byte, sendBuffer)

	r.mu.Lock()
	defer r.mu.Unlock()

	players, ok := r.sessions[gameID]
	if !ok {
		players = make(map[game.PlayerID]chan []byte)
		r.sessions[gameID] = players
	}
	if old, ok := players[playerID]; ok {
		close(old)
	}
	players[playerID] = ch
	return ch
}

// Unregister removes the player's entry and closes its channel, ending the
// write pump. The channel returned by Register must be passed back so a
// superseded connection cannot tear down its successor's registration.
func (r *Registry) Unregister(gameID game.GameID, playerID game.PlayerID, ch chan []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, ok := r.sessions[gameID]
	if !ok {
		return
	}
	if cur, ok := players[playerID]; ok && cur == ch {
		delete(players, playerID)
		close(cur)
	}
	if len(players) == 0 {
		delete(r.sessions, gameID)
	}
}

// Broadcast queues msg for every registered player of the game. Delivery is
// best-effort and non-blocking: a full queue means that consumer loses this
// message.
func (r *Registry) Broadcast(gameID game.GameID, msg []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.sessions[gameID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SendToPlayer queues msg for a single player and reports whether that
// player had a live registration with queue room.
func (r *Registry) SendToPlayer(gameID game.GameID, playerID game.PlayerID, msg []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players, ok := r.sessions[gameID]
	if !ok {
		return false
	}
	ch, ok := players[playerID]
	if !ok {
		return false
	}

	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}
