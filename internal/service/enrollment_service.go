package service

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/constant"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
)

type enrollmentStore interface {
	Create(ctx context.Context, e *entity.TeacherEnrollment) error
	List(ctx context.Context) ([]*entity.TeacherEnrollment, error)
}

type EnrollmentService struct {
	store     enrollmentStore
	otp       otpVerifier
	validator *validator.Validate
	now       func() time.Time
}

func NewEnrollmentService(store enrollmentStore, otp otpVerifier, validator *validator.Validate) *EnrollmentService {
	return &EnrollmentService{
		store:     store,
		otp:       otp,
		validator: validator,
		now:       time.Now,
	}
}

func (s *EnrollmentService) Submit(ctx context.Context, req model.CreateEnrollmentRequest) (*model.EnrollmentDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	email := helper.NormalizeEmail(req.Email)

	if err := s.otp.Verify(ctx, email, req.Code, constant.OTPPurposeTeacherEnrollment); err != nil {
		return nil, err
	}

	enrollment := &entity.TeacherEnrollment{
		ID:                   helper.NewUUID(),
		FullName:             req.FullName,
		Email:                email,
		Phone:                req.Phone,
		City:                 req.City,
		Country:              req.Country,
		MeditationExperience: req.MeditationExperience,
		TeachingExperience:   req.TeachingExperience,
		Availability:         req.Availability,
		Referral:             req.Referral,
		CreatedAt:            s.now(),
	}

	if err := s.store.Create(ctx, enrollment); err != nil {
		slog.Error("Failed to create enrollment", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return enrollmentDTO(enrollment), nil
}

func (s *EnrollmentService) List(ctx context.Context, actor model.UserDTO) ([]model.EnrollmentDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	enrollments, err := s.store.List(ctx)
	if err != nil {
		slog.Error("Failed to list enrollments", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	dtos := make([]model.EnrollmentDTO, 0, len(enrollments))
	for _, e := range enrollments {
		dtos = append(dtos, *enrollmentDTO(e))
	}
	return dtos, nil
}

func (s *EnrollmentService) ExportCSV(ctx context.Context, actor model.UserDTO, w io.Writer) error {
	if !authz.IsStaff(actor.Role) {
		return helper.NewForbiddenError("Staff access required")
	}

	enrollments, err := s.store.List(ctx)
	if err != nil {
		slog.Error("Failed to list enrollments", "error", err)
		return helper.NewInternalServerError("")
	}

	cw := csv.NewWriter(w)
	header := []string{
		"full_name", "email", "phone", "city", "country",
		"meditation_experience", "teaching_experience", "availability", "referral", "submitted_at",
	}
	if err := cw.Write(header); err != nil {
		return helper.NewInternalServerError("")
	}
	for _, e := range enrollments {
		record := []string{
			e.FullName, e.Email, e.Phone, e.City, e.Country,
			e.MeditationExperience, e.TeachingExperience, e.Availability, e.Referral,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return helper.NewInternalServerError("")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("Failed to write CSV", "error", err)
		return helper.NewInternalServerError("")
	}
	return nil
}

func enrollmentDTO(e *entity.TeacherEnrollment) *model.EnrollmentDTO {
	return &model.EnrollmentDTO{
		ID:                   e.ID,
		FullName:             e.FullName,
		Email:                e.Email,
		Phone:                e.Phone,
		City:                 e.City,
		Country:              e.Country,
		MeditationExperience: e.MeditationExperience,
		TeachingExperience:   e.TeachingExperience,
		Availability:         e.Availability,
		Referral:             e.Referral,
		CreatedAt:            e.CreatedAt,
	}
}
