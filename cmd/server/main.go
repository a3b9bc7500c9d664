package main // Entry point for the chat API server

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/broker"
	"github.com/iliyamo/chat-backend/internal/config"
	"github.com/iliyamo/chat-backend/internal/database"
	"github.com/iliyamo/chat-backend/internal/handler"
	"github.com/iliyamo/chat-backend/internal/middleware"
	"github.com/iliyamo/chat-backend/internal/repository"
	"github.com/iliyamo/chat-backend/internal/router"
	"github.com/iliyamo/chat-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("server: database connect failed: %v", err)
	}
	defer db.Close()
	log.Printf("server: connected to database %s", cfg.DBName)

	// The broker is optional for the API server: registration and messaging
	// keep working without it, only notifications are lost. A nil-channel
	// client logs and drops every publish.
	events, err := broker.Connect(config.AMQPURL())
	if err != nil {
		log.Printf("server: WARNING: broker unavailable, events will not be published: %v", err)
		events = nil
	} else {
		defer events.Close()
		// A declare failure on a live connection means the topology exists
		// with different settings; publishing into it would misroute events.
		if err := events.EnsureTopology(); err != nil {
			log.Fatalf("server: broker topology setup failed: %v", err)
		}
		log.Printf("server: connected to broker, topology ensured")
	}

	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	messages := repository.NewMessageRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, events),
		Users:    handler.NewUserHandler(cfg, users),
		Rooms:    handler.NewRoomHandler(rooms, users, events),
		Messages: handler.NewMessageHandler(messages, rooms, users, events),
	}

	if cfg.TranslateURL != "" {
		tc := service.NewTranslationClient(cfg.TranslateURL)
		if tc.Available(context.Background()) {
			log.Printf("server: translation API connected at %s", cfg.TranslateURL)
		} else {
			log.Printf("server: WARNING: translation API at %s not responding", cfg.TranslateURL)
		}
		h.Translation = handler.NewTranslationHandler(tc)
	}

	e := echo.New()
	e.HideBanner = true

	// Redis-backed rate limiting; degrades to pass-through when Redis is down.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("server: WARNING: redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.Register(e, h, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("server: listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
