package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"SereneCMSAPI/internal/adapter"
	"SereneCMSAPI/internal/bootstrap"
	"SereneCMSAPI/internal/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	db := config.InitPostgres(cfg)
	defer db.Close()

	redisAdapter, err := adapter.NewRedisAdapter(cfg)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	s3Client := config.NewS3Client(cfg)

	validate := config.NewValidator()

	otpLimiter := config.NewRateLimiter(cfg)
	defer otpLimiter.Stop()

	mux := bootstrap.Init(cfg, db, validate, redisAdapter, s3Client, otpLimiter)

	addr := fmt.Sprintf(":%s", cfg.AppPort)
	slog.Info("Starting SereneCMSAPI", "port", cfg.AppPort)

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
