package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/config"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/repository"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/service"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-advisor/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var moveRepo repository.MoveRepository
	if conf.Redis.Enabled {
		redisStorage, err := connectRedis(ctx, conf)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		moveRepo = repository.NewMoveRepository(redisStorage.Connection, conf.Redis.MoveTTL)
		log.Info("Move cache enabled", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.MoveTTL)
	}

	botService := service.NewBotService(logger)
	advisor := usecase.NewAdvisorUseCase(logger, botService, moveRepo)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "api_key_required", conf.APIKey != "")

	if err := rest.New(logger, conf, advisor).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func connectRedis(ctx context.Context, conf *config.Config) (*storage.RedisStorage, error) {
	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}
