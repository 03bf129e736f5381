package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"bookservice/internal/config"
	"bookservice/internal/platform/database"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, *command, *name, logger); err != nil {
		logger.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, command, name string, logger *slog.Logger) error {
	if command == "create" {
		if name == "" {
			return errMissingName
		}
		if err := goose.Create(nil, cfg.MigrationsDir, name, "sql"); err != nil {
			return err
		}
		logger.Info("migration created", "name", name)
		return nil
	}

	pool, err := database.Open(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, cfg.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case "down":
		if err := goose.DownContext(ctx, db, cfg.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migration rolled back")
	case "status":
		return goose.StatusContext(ctx, db, cfg.MigrationsDir)
	default:
		return unknownCommandError(command)
	}
	return nil
}
