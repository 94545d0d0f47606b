package service

import (
	"context"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/constant"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
)

type applicationStore interface {
	Create(ctx context.Context, a *entity.Application) error
	List(ctx context.Context, kind string) ([]*entity.Application, error)
}

type ApplicationService struct {
	store     applicationStore
	otp       otpVerifier
	validator *validator.Validate
	now       func() time.Time
}

func NewApplicationService(store applicationStore, otp otpVerifier, validator *validator.Validate) *ApplicationService {
	return &ApplicationService{
		store:     store,
		otp:       otp,
		validator: validator,
		now:       time.Now,
	}
}

func applicationPurpose(kind string) string {
	if kind == "teacher" {
		return constant.OTPPurposeTeacherApplication
	}
	return constant.OTPPurposeVolunteerApplication
}

func (s *ApplicationService) Submit(ctx context.Context, req model.CreateApplicationRequest) (*model.ApplicationDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	email := helper.NormalizeEmail(req.Email)

	if err := s.otp.Verify(ctx, email, req.Code, applicationPurpose(req.Kind)); err != nil {
		return nil, err
	}

	app := &entity.Application{
		ID:         helper.NewUUID(),
		Kind:       req.Kind,
		FullName:   req.FullName,
		Email:      email,
		Phone:      req.Phone,
		Motivation: req.Motivation,
		Details:    req.Details,
		CreatedAt:  s.now(),
	}

	if err := s.store.Create(ctx, app); err != nil {
		slog.Error("Failed to create application", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return applicationDTO(app), nil
}

func (s *ApplicationService) List(ctx context.Context, actor model.UserDTO, kind string) ([]model.ApplicationDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	apps, err := s.store.List(ctx, kind)
	if err != nil {
		slog.Error("Failed to list applications", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	dtos := make([]model.ApplicationDTO, 0, len(apps))
	for _, app := range apps {
		dtos = append(dtos, *applicationDTO(app))
	}
	return dtos, nil
}

func applicationDTO(a *entity.Application) *model.ApplicationDTO {
	return &model.ApplicationDTO{
		ID:         a.ID,
		Kind:       a.Kind,
		FullName:   a.FullName,
		Email:      a.Email,
		Phone:      a.Phone,
		Motivation: a.Motivation,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
	}
}
