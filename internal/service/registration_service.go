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
	"github.com/google/uuid"
)

type registrationStore interface {
	Create(ctx context.Context, reg *entity.EventRegistration) error
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	ExistsByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.EventRegistration, error)
}

type RegistrationService struct {
	store     registrationStore
	events    eventStore
	otp       otpVerifier
	validator *validator.Validate
	now       func() time.Time
}

func NewRegistrationService(store registrationStore, events eventStore, otp otpVerifier, validator *validator.Validate) *RegistrationService {
	return &RegistrationService{
		store:     store,
		events:    events,
		otp:       otp,
		validator: validator,
		now:       time.Now,
	}
}

// Register records an attendee for an event. The email must be proven via OTP
// first; closed or full events reject the registration.
func (s *RegistrationService) Register(ctx context.Context, eventID uuid.UUID, req model.CreateRegistrationRequest) (*model.RegistrationDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	email := helper.NormalizeEmail(req.Email)

	if err := s.otp.Verify(ctx, email, req.Code, constant.OTPPurposeEventRegistration); err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		slog.Error("Failed to query event", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if event == nil {
		return nil, helper.NewNotFoundError("Event not found")
	}
	if event.Status != constant.EventStatusUpcoming && event.Status != constant.EventStatusOngoing {
		return nil, helper.NewBadRequestError("Event is not open for registration")
	}

	exists, err := s.store.ExistsByEventAndEmail(ctx, eventID, email)
	if err != nil {
		slog.Error("Failed to query registrations", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if exists {
		return nil, helper.NewBadRequestError("You are already registered for this event")
	}

	if event.Capacity > 0 {
		count, err := s.store.CountByEvent(ctx, eventID)
		if err != nil {
			slog.Error("Failed to count registrations", "error", err)
			return nil, helper.NewInternalServerError("")
		}
		if count >= event.Capacity {
			return nil, helper.NewBadRequestError("Event is full")
		}
	}

	reg := &entity.EventRegistration{
		ID:        helper.NewUUID(),
		EventID:   eventID,
		FullName:  req.FullName,
		Email:     email,
		Phone:     req.Phone,
		CreatedAt: s.now(),
	}

	if err := s.store.Create(ctx, reg); err != nil {
		slog.Error("Failed to create registration", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return registrationDTO(reg), nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, actor model.UserDTO, eventID uuid.UUID) ([]model.RegistrationDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	regs, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		slog.Error("Failed to list registrations", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	dtos := make([]model.RegistrationDTO, 0, len(regs))
	for _, reg := range regs {
		dtos = append(dtos, *registrationDTO(reg))
	}
	return dtos, nil
}

// ExportCSV streams the event's registrations as CSV to w.
func (s *RegistrationService) ExportCSV(ctx context.Context, actor model.UserDTO, eventID uuid.UUID, w io.Writer) error {
	if !authz.IsStaff(actor.Role) {
		return helper.NewForbiddenError("Staff access required")
	}

	regs, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		slog.Error("Failed to list registrations", "error", err)
		return helper.NewInternalServerError("")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"full_name", "email", "phone", "registered_at"}); err != nil {
		return helper.NewInternalServerError("")
	}
	for _, reg := range regs {
		record := []string{reg.FullName, reg.Email, reg.Phone, reg.CreatedAt.Format(time.RFC3339)}
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

func registrationDTO(reg *entity.EventRegistration) *model.RegistrationDTO {
	return &model.RegistrationDTO{
		ID:        reg.ID,
		EventID:   reg.EventID,
		FullName:  reg.FullName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		CreatedAt: reg.CreatedAt,
	}
}
