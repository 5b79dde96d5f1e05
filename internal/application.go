package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/alinem-backend/internal/ai"
	"github.com/rocketscienceinc/alinem-backend/internal/config"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
	"github.com/rocketscienceinc/alinem-backend/internal/repository"
	"github.com/rocketscienceinc/alinem-backend/internal/repository/storage"
	"github.com/rocketscienceinc/alinem-backend/transport/rest"
	"github.com/rocketscienceinc/alinem-backend/transport/websocket"
	"github.com/rocketscienceinc/alinem-backend/internal/usecase"
)

var ErrUnknownStorageType = errors.New("unknown storage type")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameManager, health, closeStorage, err := buildGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, health)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// buildGameManager wires the session orchestrator on top of the configured
// session store. Memory is the default; Redis is opt-in.
func buildGameManager(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.GameManager, rest.HealthCheck, func(), error) {
	log := logger.With("component", "app")

	gameAI := ai.New()
	difficulty := entity.Difficulty(conf.Game.DefaultDifficulty)

	switch conf.Storage.Type {
	case config.StorageMemory:
		registry := repository.NewMemoryRegistry()
		manager := usecase.NewGameManager(logger, registry, registry, gameAI, difficulty)
		health := func(context.Context) error { return nil }
		return manager, health, func() {}, nil

	case config.StorageRedis:
		client, err := storage.New(ctx, conf.Storage.Redis.Addr())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		gameRepo := repository.NewRedisGameRepository(client)
		playerRepo := repository.NewRedisPlayerRepository(client)
		manager := usecase.NewGameManager(logger, gameRepo, playerRepo, gameAI, difficulty)

		health := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		closeStorage := func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}
		return manager, health, closeStorage, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrUnknownStorageType, conf.Storage.Type)
	}
}
