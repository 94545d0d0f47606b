package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/constant"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type eventStore interface {
	Create(ctx context.Context, e *entity.Event) error
	Update(ctx context.Context, e *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	List(ctx context.Context, status string) ([]*entity.Event, error)
	ListPublic(ctx context.Context) ([]*entity.Event, error)
}

type EventService struct {
	store     eventStore
	validator *validator.Validate
	activity  activityRecorder
	now       func() time.Time
}

func NewEventService(store eventStore, validator *validator.Validate, activity activityRecorder) *EventService {
	return &EventService{
		store:     store,
		validator: validator,
		activity:  activity,
		now:       time.Now,
	}
}

// TemporalStatus maps an event's dates onto its published state. Events have
// no standalone "published" status; publishing resolves directly to one of
// these.
func TemporalStatus(startsAt, endsAt, now time.Time) string {
	switch {
	case now.Before(startsAt):
		return constant.EventStatusUpcoming
	case now.After(endsAt):
		return constant.EventStatusCompleted
	default:
		return constant.EventStatusOngoing
	}
}

func isTemporal(status string) bool {
	return status == constant.EventStatusUpcoming ||
		status == constant.EventStatusOngoing ||
		status == constant.EventStatusCompleted
}

func (s *EventService) Create(ctx context.Context, actor model.UserDTO, req model.UpsertEventRequest) (*model.EventDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	now := s.now()
	event := &entity.Event{
		ID:          helper.NewUUID(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
	}

	saveAsDraft, auto, hasFlags := statusHints(req.Status, req.AutoPublish)
	switch authz.ResolveStatus(actor.Role, saveAsDraft, auto, hasFlags, false) {
	case authz.DispositionPublish:
		event.Status = TemporalStatus(event.StartsAt, event.EndsAt, now)
		event.PublishedAt = &now
	case authz.DispositionPendingReview:
		event.Status = constant.EventStatusPendingReview
	default:
		event.Status = constant.EventStatusDraft
	}

	if err := s.store.Create(ctx, event); err != nil {
		slog.Error("Failed to create event", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "event.create", "event", &event.ID, event.Status)

	return eventDTO(event), nil
}

func (s *EventService) Update(ctx context.Context, actor model.UserDTO, id uuid.UUID, req model.UpsertEventRequest) (*model.EventDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query event", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if event == nil {
		return nil, helper.NewNotFoundError("Event not found")
	}
	if event.Status == constant.EventStatusCancelled {
		return nil, helper.NewBadRequestError("Cancelled events cannot be edited")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Type = req.Type
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Location = req.Location
	event.Capacity = req.Capacity

	now := s.now()
	saveAsDraft, auto, hasFlags := statusHints(req.Status, req.AutoPublish)
	switch authz.ResolveStatus(actor.Role, saveAsDraft, auto, hasFlags, true) {
	case authz.DispositionPublish:
		event.Status = TemporalStatus(event.StartsAt, event.EndsAt, now)
		if event.PublishedAt == nil {
			event.PublishedAt = &now
		}
	case authz.DispositionPendingReview:
		event.Status = constant.EventStatusPendingReview
	case authz.DispositionDraft:
		event.Status = constant.EventStatusDraft
	case authz.DispositionKeep:
		// A published event keeps tracking its dates when they change.
		if isTemporal(event.Status) {
			event.Status = TemporalStatus(event.StartsAt, event.EndsAt, now)
		}
	}

	if err := s.store.Update(ctx, event); err != nil {
		slog.Error("Failed to update event", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "event.update", "event", &event.ID, event.Status)

	return eventDTO(event), nil
}

func (s *EventService) Review(ctx context.Context, actor model.UserDTO, id uuid.UUID, req model.ReviewRequest) (*model.EventDTO, error) {
	if !authz.CanReview(actor.Role) {
		return nil, helper.NewForbiddenError("Reviewer access required")
	}

	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query event", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if event == nil {
		return nil, helper.NewNotFoundError("Event not found")
	}
	if event.Status != constant.EventStatusPendingReview {
		return nil, helper.NewBadRequestError("Event is not pending review")
	}

	now := s.now()
	event.ReviewedBy = &actor.ID

	action := "event.approve"
	if req.Approve {
		event.Status = TemporalStatus(event.StartsAt, event.EndsAt, now)
		event.RejectionReason = nil
		if event.PublishedAt == nil {
			event.PublishedAt = &now
		}
	} else {
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return nil, helper.NewBadRequestError("rejection_reason is required")
		}
		event.Status = constant.EventStatusDraft
		event.RejectionReason = &reason
		action = "event.reject"
	}

	if err := s.store.Update(ctx, event); err != nil {
		slog.Error("Failed to update event", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, action, "event", &event.ID, "")

	return eventDTO(event), nil
}

func (s *EventService) Cancel(ctx context.Context, actor model.UserDTO, id uuid.UUID) (*model.EventDTO, error) {
	if !authz.CanManageContent(actor.Role) {
		return nil, helper.NewForbiddenError("Content manager access required")
	}

	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query event", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if event == nil {
		return nil, helper.NewNotFoundError("Event not found")
	}
	if event.Status == constant.EventStatusCompleted {
		return nil, helper.NewBadRequestError("Completed events cannot be cancelled")
	}

	event.Status = constant.EventStatusCancelled

	if err := s.store.Update(ctx, event); err != nil {
		slog.Error("Failed to update event", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "event.cancel", "event", &event.ID, "")

	return eventDTO(event), nil
}

func (s *EventService) Get(ctx context.Context, actor model.UserDTO, id uuid.UUID) (*model.EventDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query event", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if event == nil {
		return nil, helper.NewNotFoundError("Event not found")
	}
	return eventDTO(event), nil
}

func (s *EventService) ListAdmin(ctx context.Context, actor model.UserDTO, status string) ([]model.EventDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	events, err := s.store.List(ctx, status)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	return eventDTOs(events), nil
}

func (s *EventService) ListPublic(ctx context.Context) ([]model.EventDTO, error) {
	events, err := s.store.ListPublic(ctx)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	return eventDTOs(events), nil
}

func eventDTO(e *entity.Event) *model.EventDTO {
	return &model.EventDTO{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Type:            e.Type,
		Status:          e.Status,
		RejectionReason: e.RejectionReason,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Location:        e.Location,
		Capacity:        e.Capacity,
		CreatedBy:       e.CreatedBy,
		ReviewedBy:      e.ReviewedBy,
		PublishedAt:     e.PublishedAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func eventDTOs(events []*entity.Event) []model.EventDTO {
	dtos := make([]model.EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, *eventDTO(e))
	}
	return dtos
}
