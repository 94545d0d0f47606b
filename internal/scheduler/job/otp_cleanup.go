package job

import (
	"context"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/repository"
)

// RunOTPCleanup removes codes that expired or were consumed longer ago than
// the retention window. Live codes are never touched; expiry checks stay
// purely timestamp based so a late purge cannot change verification results.
func RunOTPCleanup(ctx context.Context, repo *repository.OTPRepository, cfg *config.AppConfig) error {
	retentionHours := cfg.OTPRetentionHours
	if retentionHours <= 0 {
		retentionHours = 24
	}
	cutoff := time.Now().UTC().Add(-time.Duration(retentionHours) * time.Hour)

	slog.Info("Running OTP Cleanup", "cutoff", cutoff)

	deleted, err := repo.PurgeStale(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to purge stale OTPs", "error", err)
		return err
	}

	slog.Info("Purged stale OTPs", "count", deleted)
	return nil
}
