package main

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/vyadl/idli-back/config"
	"github.com/vyadl/idli-back/db"
	"github.com/vyadl/idli-back/internal/auth/blacklist"
	"github.com/vyadl/idli-back/internal/auth/domain"
	"github.com/vyadl/idli-back/internal/auth/events"
	"github.com/vyadl/idli-back/internal/auth/handler"
	repo "github.com/vyadl/idli-back/internal/auth/repository/postgres"
	"github.com/vyadl/idli-back/internal/auth/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	var tokenBlacklist domain.Blacklist
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		tokenBlacklist = blacklist.NewRedis(client)
	} else {
		memory := blacklist.NewMemory()
		defer memory.Close()
		tokenBlacklist = memory
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisher := events.NewWatermillPublisher(pubSub)

	repository := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	sessionService := service.NewSessionService(repository, repository, tokenService, tokenBlacklist, publisher)
	authHandler := handler.NewAuthHandler(sessionService, tokenService, tokenBlacklist)

	app := fiber.New()
	app.Use(logger.New())
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
