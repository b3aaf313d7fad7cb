package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/dayplan/internal/cache"
	"github.com/Nixie-Tech-LLC/dayplan/internal/config"
	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

var serveAddr string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Examples:
  dayplan serve
  dayplan serve --addr :9090
  dayplan serve --env-file ./prod.env`,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SERVER_ADDRESS)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ServerAddress = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	store := db.NewStore(conn)
	defer store.Close()

	dateCache, closeCache := newDateCache(ctx, cfg)
	defer closeCache()

	resolver := schedule.NewResolver(store, schedule.WithCache(dateCache))

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, resolver)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Str("driver", cfg.DatabaseDriver).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newDateCache uses Redis when configured and reachable, the in-process
// cache otherwise.
func newDateCache(ctx context.Context, cfg *config.Config) (schedule.DateCache, func()) {
	if cfg.RedisAddress == "" {
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}

	rc := cache.NewRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword, cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddress).Msg("redis unavailable, using in-memory schedule cache")
		rc.Close()
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}

	log.Info().Str("addr", cfg.RedisAddress).Msg("connected to redis")
	return rc, func() { rc.Close() }
}
