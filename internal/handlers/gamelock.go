// internal/handlers/gamelock.go
package handlers

import (
	"sync"

	"github.com/jason-s-yu/deathroll/internal/game"
)

// gameLocks serializes load->mutate->save sequences per game id. Without it,
// two commands racing on the same game can both read the same snapshot and
// the second save silently overwrites the first, corrupting turn order.
//
// Lock entries are never evicted; the id space one process touches is
// bounded by the store's retention window.
type gameLocks struct {
	mu    sync.Mutex
	locks map[game.GameID]*sync.Mutex
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[game.GameID]*sync.Mutex),
	}
}

// lock acquires the per-game mutex and returns its unlock func. Callers must
// release it before any websocket write; it may only span persistence calls,
// which are themselves bounded by the repository's call timeout.
func (l *gameLocks) lock(id game.GameID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
