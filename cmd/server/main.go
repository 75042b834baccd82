package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/community/api/internal/app"
	"github.com/forgo/community/api/internal/config"
	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/repository/memory"
	"github.com/forgo/community/api/migrations"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		slog.Warn("JWT_SECRET not set, using the development signing secret")
	}

	ctx := context.Background()

	// Initialize storage
	var storage app.Storage
	switch cfg.Storage.Driver {
	case config.StorageSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		if err := database.Migrate(ctx, db, migrations.FS); err != nil {
			slog.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("connected to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Database),
		)
		storage = app.SurrealStorage(db)
	default:
		slog.Info("using in-memory storage, data is lost on restart")
		storage = app.MemoryStorage(memory.New())
	}

	api, err := app.New(app.Options{Config: cfg, Storage: storage})
	if err != nil {
		slog.Error("failed to initialize api", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := api.Start(ctx); err != nil {
		slog.Error("failed to start background services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("storage", storage.Name),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Closing the hub first ends open admin streams so Shutdown can drain
	api.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
