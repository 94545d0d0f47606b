package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/scheduler"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	// The API binary owns schema migration.
	cfg.DBMigrate = false

	db := config.InitPostgres(cfg)
	defer db.Close()

	srv := scheduler.New(cfg, db)

	srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down scheduler...")
	srv.Stop()
}
