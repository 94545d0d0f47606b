package job

import (
	"context"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/repository"
)

func RunActivityLogCleanup(ctx context.Context, repo *repository.ActivityLogRepository, cfg *config.AppConfig) error {
	retentionDays := cfg.LogRetentionDays
	if retentionDays <= 0 {
		retentionDays = 90
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	slog.Info("Running Activity Log Cleanup", "cutoff", cutoff)

	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to delete old activity logs", "error", err)
		return err
	}

	slog.Info("Deleted old activity logs", "count", deleted)
	return nil
}
