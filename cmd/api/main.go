package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookservice/internal/book"
	"bookservice/internal/config"
	"bookservice/internal/platform/database"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, ready, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	service := book.NewService(store, book.WithLogger(logger))
	handler := newRouter(ctx, cfg, logger, book.NewHTTPHandler(service, logger), ready)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr, "storage", cfg.Storage)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openStore returns the configured store, a readiness probe and a cleanup func.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (book.Store, func(context.Context) error, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return book.NewMemoryStore(), func(context.Context) error { return nil }, func() {}, nil
	}

	pool, err := database.Open(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	store := book.NewPostgresStore(pool,
		book.WithQueryTimeout(cfg.QueryTimeout),
		book.WithStoreLogger(logger),
	)
	return store, pool.Ping, pool.Close, nil
}
