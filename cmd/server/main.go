package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	_ "github.com/gabrielpastega/delish-express-data-visualization/internal/core/tables" // Register all tables
	"github.com/gabrielpastega/delish-express-data-visualization/internal/dataset"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/source"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"dataset", cfg.Dataset.Path,
		"database_source", cfg.UsesDatabase(),
		"watch", cfg.Dataset.Watch,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()

	// Open the dataset source (database table or file)
	src, closeSource, err := source.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open dataset source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// Initial load; the server does not start without data
	store := dataset.NewStore(src, cfg.Dataset.LoadTimeout)
	snap, err := store.Load(ctx)
	if err != nil {
		msg := core.MapError(err)
		slog.Error("failed to load dataset", "error", err, "code", msg.Code, "hint", msg.Action)
		closeSource()
		os.Exit(1)
	}

	// Log registered tables
	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
		"records", len(snap.Records),
	)
	for _, group := range core.Groups() {
		slog.Debug("table group", "group", group, "tables", len(core.ByGroup(group)))
	}

	// Create server with config
	server := web.NewServer(store, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	// Reload the dataset when the file changes
	watchDone := make(chan struct{})
	if cfg.Dataset.Watch {
		watcher := &source.Watcher{
			Path:     cfg.Dataset.Path,
			Debounce: cfg.Dataset.WatchDebounce,
			OnChange: store.Reload,
		}
		go func() {
			defer close(watchDone)
			if err := watcher.Run(jobCtx); err != nil {
				slog.Error("dataset watcher stopped", "error", err)
			}
		}()
	} else {
		close(watchDone)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		select {
		case <-watchDone:
		case <-shutdownCtx.Done():
			slog.Warn("dataset watcher did not stop in time")
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return
	}
	slog.Info("server stopped")
}
