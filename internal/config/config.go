// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries process configuration, sourced from the environment (a
// .env file is loaded by the godotenv autoload import in main).
type Config struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	GameTTL       time.Duration
	StoreTimeout  time.Duration
	LogLevel      string
}

// Load reads configuration from environment variables, falling back to
// development defaults:
//   - ADDR (default ":8080"), or PORT as a shorthand for ":<PORT>"
//   - REDIS_ADDR (default "localhost:6379"), REDIS_PASSWORD, REDIS_DB
//   - GAME_TTL (default 24h), STORE_TIMEOUT (default 5s)
//   - LOG_LEVEL (default "info")
func Load() *Config {
	addr := getEnv("ADDR", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	return &Config{
		Addr:          addr,
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		GameTTL:       getEnvDuration("GAME_TTL", 24*time.Hour),
		StoreTimeout:  getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv is a helper to read an environment variable or return a default
// value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a
// default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration is a helper to parse an environment variable as a duration
// ("24h", "5s"), else a default value.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return v
}
