// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jason-s-yu/deathroll/internal/game"
)

const gameKeyPrefix = "game:"

const (
	// DefaultTTL is the retention window applied on every write. Expiry is
	// the only garbage collection games get; there is no explicit delete.
	DefaultTTL = 24 * time.Hour

	// DefaultCallTimeout bounds every Redis round-trip so a stalled store
	// cannot wedge a connection's command processing indefinitely.
	DefaultCallTimeout = 5 * time.Second
)

// Config holds configuration for the Redis-backed repository.
type Config struct {
	// Redis client.
	Client *redis.Client

	// TTL applied on every write; zero means DefaultTTL.
	TTL time.Duration

	// CallTimeout per Redis call; zero means DefaultCallTimeout.
	CallTimeout time.Duration
}

// RedisRepository implements GameRepository against Redis, storing each game
// as a JSON blob under game:<id>.
type RedisRepository struct {
	client      *redis.Client
	ttl         time.Duration
	callTimeout time.Duration
}

// NewRedis creates a Redis-backed game repository and verifies connectivity.
func NewRedis(cfg *Config) (*RedisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := cfg.Client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRepository{
		client:      cfg.Client,
		ttl:         ttl,
		callTimeout: callTimeout,
	}, nil
}

func gameKey(id game.GameID) string {
	return gameKeyPrefix + id.String()
}

// Load retrieves a game by id. A missing key is ErrGameNotFound; everything
// else is an infrastructure error.
func (r *RedisRepository) Load(ctx context.Context, id game.GameID) (*game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	payload, err := r.client.Get(ctx, gameKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var g game.Game
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}

// Save upserts the game under its id and (re)applies the TTL.
func (r *RedisRepository) Save(ctx context.Context, g *game.Game) error {
	if g == nil {
		return errors.New("game cannot be nil")
	}

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	if err := r.client.Set(ctx, gameKey(g.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}
