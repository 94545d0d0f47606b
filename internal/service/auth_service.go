package service

import (
	"context"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/constant"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userStore interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type otpVerifier interface {
	Verify(ctx context.Context, email, code, purpose string) error
}

type AuthService struct {
	users     userStore
	otp       otpVerifier
	cfg       *config.AppConfig
	validator *validator.Validate
}

func NewAuthService(users userStore, otp otpVerifier, cfg *config.AppConfig, validator *validator.Validate) *AuthService {
	return &AuthService{
		users:     users,
		otp:       otp,
		cfg:       cfg,
		validator: validator,
	}
}

// Signup creates a member account after the email has been proven via OTP.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	email := helper.NormalizeEmail(req.Email)

	if err := s.otp.Verify(ctx, email, req.Code, constant.OTPPurposeSignup); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if existing != nil {
		return nil, helper.NewBadRequestError("Email is already registered")
	}

	passwordHash, err := helper.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	user := &entity.User{
		ID:           helper.NewUUID(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         constant.RoleMember,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		slog.Error("Failed to create user", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	user, err := s.users.FindByEmail(ctx, helper.NormalizeEmail(req.Email))
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if user == nil || !helper.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, helper.NewUnauthorizedError("Invalid email or password")
	}

	return s.authResponse(user)
}

// VerifyUser resolves a bearer token to the current user record.
func (s *AuthService) VerifyUser(ctx context.Context, tokenString string) (*model.UserDTO, error) {
	claims, err := helper.ParseJWT(s.cfg.JWTSecret, tokenString)
	if err != nil {
		return nil, helper.NewUnauthorizedError("")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if user == nil {
		return nil, helper.NewUnauthorizedError("")
	}

	return userDTO(user), nil
}

func (s *AuthService) authResponse(user *entity.User) (*model.AuthResponse, error) {
	token, err := helper.GenerateJWT(s.cfg.JWTSecret, s.cfg.JWTExp, user.ID, user.Role)
	if err != nil {
		slog.Error("Failed to generate JWT token", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return &model.AuthResponse{
		Token: token,
		User:  *userDTO(user),
	}, nil
}

func userDTO(u *entity.User) *model.UserDTO {
	return &model.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
