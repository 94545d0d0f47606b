package service

import (
	"context"
	"crypto/rand"
	"embed"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:embed template
var templateFS embed.FS

const (
	msgOTPInvalidOrExpired = "OTP is invalid or has expired"
	msgOTPIncorrect        = "Incorrect OTP, please try again"
	msgOTPLockedOut        = "Too many invalid attempts. Please request a new code"
)

type otpStore interface {
	DeleteByEmailPurpose(ctx context.Context, email, purpose string) error
	Create(ctx context.Context, o *entity.OTP) error
	FindActive(ctx context.Context, email, purpose string, now time.Time) (*entity.OTP, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error)
	Consume(ctx context.Context, id uuid.UUID, maxAttempts int, now time.Time) (bool, error)
}

type mailer interface {
	Send(to string, subject string, plainText string, htmlBody string) error
}

type OTPService struct {
	store       otpStore
	cfg         *config.AppConfig
	validator   *validator.Validate
	mailer      mailer
	rateLimiter *config.RateLimiter
	now         func() time.Time
}

func NewOTPService(store otpStore, cfg *config.AppConfig, validator *validator.Validate, mailer mailer, rateLimiter *config.RateLimiter) *OTPService {
	return &OTPService{
		store:       store,
		cfg:         cfg,
		validator:   validator,
		mailer:      mailer,
		rateLimiter: rateLimiter,
		now:         time.Now,
	}
}

// Send issues a fresh code for (email, purpose), replacing any prior one. The
// persisted code stays valid even when email delivery fails afterwards.
func (s *OTPService) Send(ctx context.Context, req model.SendOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	email := helper.NormalizeEmail(req.Email)

	if s.rateLimiter != nil {
		allowed, retryAfter := s.rateLimiter.Allow(email)
		if !allowed {
			minutes := int(math.Ceil(retryAfter.Minutes()))
			return helper.NewTooManyRequestsError(fmt.Sprintf("Too many requests. Please try again in %d minutes.", minutes))
		}
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		slog.Error("Failed to generate random number", "error", err)
		return helper.NewInternalServerError("")
	}
	code := fmt.Sprintf("%06d", n.Int64())

	now := s.now()
	record := &entity.OTP{
		ID:        helper.NewUUID(),
		Email:     email,
		Code:      code,
		Purpose:   req.Purpose,
		ExpiresAt: now.Add(time.Duration(s.cfg.OTPExp) * time.Second),
		CreatedAt: now,
	}

	if err := s.store.DeleteByEmailPurpose(ctx, email, req.Purpose); err != nil {
		slog.Error("Failed to delete prior OTP records", "error", err)
		return helper.NewInternalServerError("")
	}

	if err := s.store.Create(ctx, record); err != nil {
		slog.Error("Failed to save OTP record", "error", err)
		return helper.NewInternalServerError("")
	}

	sendEmail := func() error {
		templateData := struct {
			Code           string
			ExpiresMinutes int
			Year           int
		}{
			Code:           code,
			ExpiresMinutes: s.cfg.OTPExp / 60,
			Year:           now.Year(),
		}

		htmlBody, err := helper.GenerateEmailBody(templateFS, "template/otp_email.html", templateData)
		if err != nil {
			slog.Error("Failed to generate email body", "error", err)
			return err
		}

		plainText := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, s.cfg.OTPExp/60)

		if err := s.mailer.Send(email, "Your verification code", plainText, htmlBody); err != nil {
			slog.Error("Failed to send OTP email", "error", err)
			return err
		}
		return nil
	}

	if s.cfg.EmailAsync {
		go func() { _ = sendEmail() }()
		return nil
	}

	if err := sendEmail(); err != nil {
		return helper.NewServiceUnavailableError("Failed to send verification email. Please try again later.")
	}
	return nil
}

// Verify checks a submitted code. Every comparison, including the successful
// final one, counts against the attempt limit. Consumption is a single
// conditional update, so a correct code can succeed at most once.
func (s *OTPService) Verify(ctx context.Context, email, code, purpose string) error {
	email = helper.NormalizeEmail(email)
	code = strings.TrimSpace(code)

	now := s.now()

	record, err := s.store.FindActive(ctx, email, purpose, now)
	if err != nil {
		slog.Error("Failed to query OTP record", "error", err)
		return helper.NewInternalServerError("")
	}
	if record == nil {
		return helper.NewBadRequestError(msgOTPInvalidOrExpired)
	}

	maxAttempts := s.cfg.OTPMaxAttempts
	if record.Attempts >= maxAttempts {
		return helper.NewBadRequestError(msgOTPLockedOut)
	}

	if record.Code != code {
		if _, err := s.store.IncrementAttempts(ctx, record.ID); err != nil {
			slog.Error("Failed to record OTP attempt", "error", err)
			return helper.NewInternalServerError("")
		}
		return helper.NewBadRequestError(msgOTPIncorrect)
	}

	consumed, err := s.store.Consume(ctx, record.ID, maxAttempts, now)
	if err != nil {
		slog.Error("Failed to consume OTP record", "error", err)
		return helper.NewInternalServerError("")
	}
	if !consumed {
		return helper.NewBadRequestError(msgOTPInvalidOrExpired)
	}

	return nil
}
