// internal/dice/dice.go
package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Roller provides uniform rolls in a closed range. It implements game.Roller
// and is safe for concurrent use by every connection in the process.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the dice roller.
type Config struct {
	// Optional seed for deterministic tests.
	Seed int64
}

// New creates a roller, seeded from the clock unless the config provides one.
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// RollInRange returns a uniformly distributed value in [1, max]. A max below
// 1 is treated as 1.
func (r *Roller) RollInRange(max int) int {
	if max < 1 {
		max = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(max) + 1
}
