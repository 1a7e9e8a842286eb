package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/synergysphere/sphere/internal/auth"
	"github.com/synergysphere/sphere/internal/board"
	"github.com/synergysphere/sphere/internal/config"
	"github.com/synergysphere/sphere/internal/fixture"
	"github.com/synergysphere/sphere/internal/server"
	"github.com/synergysphere/sphere/internal/store/postgres"
	redisstore "github.com/synergysphere/sphere/internal/store/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long: `Run the HTTP API and WebSocket server.

Configuration comes from SPHERE_* environment variables. The server stops
gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Database.AutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	pubsub, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer pubsub.Close()

	authSvc := auth.NewService(store.Users(), cfg.JWT.Secret, cfg.JWT.TokenTTL)
	boards := board.NewService(pubsub)

	seeded, err := boards.Seed(ctx, fixture.New(cfg.Demo.Seed), cfg.Demo.Boards)
	if err != nil {
		return err
	}
	for _, b := range seeded {
		log.Info().Str("board_id", b.ID.String()).Str("name", b.Name).Msg("seeded demo board")
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(ctx, cfg, authSvc, boards, pubsub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case startErr := <-errCh:
		if startErr != nil {
			return startErr
		}
	}
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("stopped")
	return nil
}
