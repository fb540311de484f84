package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/tempguess/tempguess/internal/board"
	"github.com/tempguess/tempguess/internal/config"
	"github.com/tempguess/tempguess/internal/core/calendar"
	"github.com/tempguess/tempguess/internal/core/storage"
	"github.com/tempguess/tempguess/internal/core/storage/memory"
	"github.com/tempguess/tempguess/internal/core/storage/postgres"
	"github.com/tempguess/tempguess/internal/migrations"
	"github.com/tempguess/tempguess/internal/rollover"
	"github.com/tempguess/tempguess/internal/server"
)

func main() {
	configPath := flag.String("config", "tempguess.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Bootstrap logger until the configured one is known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"reference_timezone", cfg.Board.ReferenceTimezone,
		"cutoff_hour", cfg.Board.CutoffHour,
		"rollover_enabled", cfg.Rollover.Enabled,
	)

	// 2. Initialize Storage
	store, health, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize Board
	clock := calendar.NewClock(nil)
	boardSvc, err := board.NewService(ctx, store, clock, board.Options{
		ReferenceTimezone: cfg.Board.ReferenceTimezone,
		UserID:            cfg.Board.UserID,
		CutoffHour:        cfg.Board.CutoffHour,
		Debounce:          cfg.Timing.Debounce,
		MaxBodySizeMB:     cfg.Server.MaxBodySizeMB,
	})
	if err != nil {
		slog.Error("Failed to initialize board", "error", err)
		os.Exit(1)
	}
	defer boardSvc.Close()

	// A failed city load is shown on the board and retried at the next midnight.
	if err := boardSvc.LoadCities(ctx); err != nil {
		slog.Warn("Board started without cities", "error", err)
	}

	// 4. Initialize Rollover Scheduler
	scheduler := rollover.NewScheduler(clock.Source(), boardSvc.ReferenceZone(), rollover.Hooks{
		OnMidnight: boardSvc.OnMidnight,
		OnPreNoon:  boardSvc.OnPreNoon,
	}, rollover.Options{
		PollInterval:  cfg.Timing.PollInterval,
		PreNoonWindow: cfg.Timing.PreNoonWindow,
		CutoffHour:    cfg.Board.CutoffHour,
		MidnightSlack: cfg.Timing.MidnightSlack,
		FireSlack:     cfg.Timing.FireSlack,
	})

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), health, cfg.Server.Mode)
	boardSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	if cfg.Rollover.Enabled {
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Rollover scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Rollover scheduler disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openStore returns the configured store, its health checker (nil for the
// memory store) and a close function.
func openStore(cfg *config.Config) (storage.ForecastStore, server.HealthChecker, func(), error) {
	switch cfg.Database.Type {
	case "memory":
		seed := memory.Seed{UserID: cfg.Board.UserID}
		if cfg.Board.SeedPath != "" {
			var err error
			if seed, err = memory.LoadSeed(cfg.Board.SeedPath); err != nil {
				return nil, nil, nil, err
			}
		} else {
			slog.Warn("Memory store has no seed file, board will be empty")
		}
		slog.Info("Using in-memory store", "seed_path", cfg.Board.SeedPath, "cities", len(seed.Cities))
		return memory.NewStore(seed), nil, func() {}, nil

	case "postgres":
		conn, err := postgres.Connect(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migrations.RunMigrations(conn, cfg.Database.AutoMigrate); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		db, err := postgres.Open(conn)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database", "error", err)
			}
		}
		return db, db, closeFn, nil
	}
	return nil, nil, nil, fmt.Errorf("unsupported database.type %q", cfg.Database.Type)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
