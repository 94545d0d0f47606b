package scheduler

import (
	"context"
	"log/slog"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/repository"
	"SereneCMSAPI/internal/scheduler/job"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cfg          *config.AppConfig
	cron         *cron.Cron
	otpRepo      *repository.OTPRepository
	activityRepo *repository.ActivityLogRepository
}

func New(cfg *config.AppConfig, db *pgxpool.Pool) *Scheduler {
	return &Scheduler{
		cfg:          cfg,
		cron:         cron.New(),
		otpRepo:      repository.NewOTPRepository(db),
		activityRepo: repository.NewActivityLogRepository(db),
	}
}

func (s *Scheduler) Start() {
	slog.Info("Starting Scheduler...")

	s.registerJobs()

	s.cron.Start()
	slog.Info("Scheduler started successfully")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.OTPCleanupCron, func() {
		slog.Info("Starting OTP Cleanup Job")
		if err := job.RunOTPCleanup(context.Background(), s.otpRepo, s.cfg); err != nil {
			slog.Error("OTP Cleanup Job failed", "error", err)
		} else {
			slog.Info("OTP Cleanup Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register OTP Cleanup job", "error", err)
	} else {
		slog.Info("Registered OTP Cleanup Job", "schedule", s.cfg.OTPCleanupCron)
	}

	_, err = s.cron.AddFunc(s.cfg.ActivityLogCleanupCron, func() {
		slog.Info("Starting Activity Log Cleanup Job")
		if err := job.RunActivityLogCleanup(context.Background(), s.activityRepo, s.cfg); err != nil {
			slog.Error("Activity Log Cleanup Job failed", "error", err)
		} else {
			slog.Info("Activity Log Cleanup Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Activity Log Cleanup job", "error", err)
	} else {
		slog.Info("Registered Activity Log Cleanup Job", "schedule", s.cfg.ActivityLogCleanupCron)
	}
}
