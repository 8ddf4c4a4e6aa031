// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/deathroll/internal/config"
	"github.com/jason-s-yu/deathroll/internal/dice"
	"github.com/jason-s-yu/deathroll/internal/handlers"
	"github.com/jason-s-yu/deathroll/internal/middleware"
	"github.com/jason-s-yu/deathroll/internal/session"
	"github.com/jason-s-yu/deathroll/internal/store"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	repo, err := store.NewRedis(&store.Config{
		Client:      client,
		TTL:         cfg.GameTTL,
		CallTimeout: cfg.StoreTimeout,
	})
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	gs := handlers.NewGameServer(repo, session.NewRegistry(), dice.New(nil), logger)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.LogMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})
	gs.Register(r)

	logger.Infof("Running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
