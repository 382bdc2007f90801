package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/panoquest/api/internal/config"
	"github.com/panoquest/api/internal/database"
	"github.com/panoquest/api/internal/migrations"
	"github.com/panoquest/api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := store.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("ensuring admin account: %w", err)
		}
	}
	if cfg.SeedDemo {
		if err := server.SeedDemoLocations(ctx, logger, store); err != nil {
			return fmt.Errorf("seeding demo locations: %w", err)
		}
	}

	// --- Redis (optional; powers the leaderboard) ---
	var rdb *redis.Client
	var leaderboard *server.Leaderboard
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		leaderboard = server.NewLeaderboard(rdb)
		logger.Info("connected to redis")
	} else {
		logger.Info("redis not configured, leaderboard disabled")
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, func(r chi.Router) {
		server.AddRoutes(r, server.Deps{
			Logger:           logger,
			Store:            store,
			Admin:            store,
			Identity:         server.HeaderIdentity{},
			Broker:           server.NewBroker(),
			Leaderboard:      leaderboard,
			RoundsPerGame:    cfg.RoundsPerGame,
			AllowEarlyFinish: cfg.AllowEarlyFinish,
			DB:               db,
			Redis:            rdb,
			SPADir:           cfg.SPADir,
		})
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
