package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cieslarmichal/just-join-us-auth/config"
	"github.com/cieslarmichal/just-join-us-auth/db"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/handler"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/notifier"
	repo "github.com/cieslarmichal/just-join-us-auth/internal/auth/repository/postgres"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/service"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	emailNotifier, err := notifier.NewRabbitMQNotifier(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer emailNotifier.Close()

	users := repo.NewUserRepository(dbPool)
	blacklist := repo.NewBlacklistRepository(dbPool)
	tokenService := service.NewTokenService(cfg.TokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin, cfg.ResetExpiryMin, cfg.VerifyExpiryMin)

	sessions := service.NewSessionService(users, blacklist, tokenService, logger)
	accounts := service.NewAccountService(users, blacklist, tokenService, emailNotifier, cfg.FrontendBaseURL, logger)
	gate := service.NewAccessGate(tokenService)

	if cfg.BlacklistSweepMin > 0 {
		go sweepBlacklist(ctx, blacklist, time.Duration(cfg.BlacklistSweepMin)*time.Minute, logger)
	}

	authHandler := handler.NewAuthHandler(sessions, accounts, gate)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// sweepBlacklist prunes revocation records whose tokens have passed their
// natural expiry.
func sweepBlacklist(ctx context.Context, blacklist *repo.BlacklistRepository, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := blacklist.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("blacklist sweep failed", slog.String("error", err.Error()))
				continue
			}
			if deleted > 0 {
				logger.Info("pruned expired blacklist records", slog.Int64("count", deleted))
			}
		}
	}
}
