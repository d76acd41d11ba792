package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/api/ws"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/board"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/config"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/drag"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/server"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/store/memory"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/store/postgres"
	redisstore "github.com/lilzcyyds-alt/trello-board-prototype/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

// broker is what the store publishes to and the WebSocket hub reads from.
type broker interface {
	board.Publisher
	ws.Subscriber
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("BOARD_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("BOARD_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		persister board.Persister
		events    broker
	)

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, connErr := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if connErr != nil {
			return connErr
		}
		defer client.Close()

		persister = redisstore.NewBlobStore(client)
		events = redisstore.NewPubSub(client)

	case config.StoragePostgres:
		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}
		pg, pgErr := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
		if pgErr != nil {
			return pgErr
		}
		defer pg.Close()

		persister = pg
		events = memory.NewPubSub()

	default:
		persister = memory.New()
		events = memory.NewPubSub()
	}

	store, err := board.Open(ctx, persister,
		board.WithKey(cfg.Storage.Key),
		board.WithPublisher(events),
		board.WithWriteTimeout(cfg.Storage.WriteTimeout),
	)
	if err != nil {
		return err
	}
	log.Info().
		Str("backend", cfg.Storage.Backend).
		Str("key", store.Key()).
		Msg("board store ready")

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sessions := drag.NewRegistry(store, cfg.Drag.SessionTTL)
	go sessions.Run(ctx)

	hub := ws.NewHub(events, store, board.Channel(store.Key()), cfg.Server.CORSOrigins)
	srv := server.New(ctx, cfg, store, sessions, hub)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
			cancel()
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}
	if closeErr := store.Close(shutdownCtx); closeErr != nil {
		return closeErr
	}

	log.Info().Msg("stopped")
	return nil
}
