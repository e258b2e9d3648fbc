package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/config"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/ultimate-tictactoe/transport/rest"
)

const shutdownTimeout = 5 * time.Second

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownStorageKind = errors.New("unknown storage kind")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameUseCase := usecase.NewGameUseCase(logger, gameRepo, conf.Storage.Slot)
	server := rest.New(logger, conf.HTTPPort, gameUseCase)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return server.Start()
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	decode := repository.Decoder(conf.Storage.Strict)

	switch conf.Storage.Kind {
	case config.StorageFile:
		log.Info("Using file storage", "dir", conf.Storage.Dir, "strict", conf.Storage.Strict)
		return repository.NewFileGameRepository(conf.Storage.Dir, decode), func() {}, nil

	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis storage", "addr", redisAddrString, "strict", conf.Storage.Strict)

		closeStorage := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisGameRepository(redisStorage.Connection, decode), closeStorage, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageKind, conf.Storage.Kind)
	}
}
