package service

import (
	"context"
	"fmt"
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

type contentStore interface {
	Create(ctx context.Context, c *entity.Content) error
	Update(ctx context.Context, c *entity.Content) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Content, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*entity.Content, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, status string) ([]*entity.Content, error)
	ListPublished(ctx context.Context) ([]*entity.Content, error)
}

type ContentService struct {
	store     contentStore
	validator *validator.Validate
	activity  activityRecorder
	now       func() time.Time
}

func NewContentService(store contentStore, validator *validator.Validate, activity activityRecorder) *ContentService {
	return &ContentService{
		store:     store,
		validator: validator,
		activity:  activity,
		now:       time.Now,
	}
}

// statusHints unpacks the optional status fields of an upsert request. The
// explicit "draft" status is the save-as-draft flag from the form.
func statusHints(status *string, autoPublish *bool) (saveAsDraft, auto, hasFlags bool) {
	hasFlags = status != nil || autoPublish != nil
	saveAsDraft = status != nil && *status == constant.ContentStatusDraft
	auto = autoPublish != nil && *autoPublish
	return
}

func (s *ContentService) Create(ctx context.Context, actor model.UserDTO, req model.UpsertContentRequest) (*model.ContentDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	body, err := model.DecodeContentBody(s.validator, req.Type, req.Body)
	if err != nil {
		return nil, helper.NewBadRequestError(err.Error())
	}

	now := s.now()
	content := &entity.Content{
		ID:        helper.NewUUID(),
		Title:     req.Title,
		Type:      req.Type,
		Body:      body,
		CreatedBy: actor.ID,
		CreatedAt: now,
	}

	content.Slug, err = s.uniqueSlug(ctx, req.Title, content.ID)
	if err != nil {
		slog.Error("Failed to derive slug", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	saveAsDraft, auto, hasFlags := statusHints(req.Status, req.AutoPublish)
	switch authz.ResolveStatus(actor.Role, saveAsDraft, auto, hasFlags, false) {
	case authz.DispositionPublish:
		content.Status = constant.ContentStatusPublished
		content.PublishedAt = &now
	case authz.DispositionPendingReview:
		content.Status = constant.ContentStatusPendingReview
	default:
		content.Status = constant.ContentStatusDraft
	}

	if err := s.store.Create(ctx, content); err != nil {
		slog.Error("Failed to create content", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "content.create", "content", &content.ID, content.Status)

	return contentDTO(content), nil
}

func (s *ContentService) Update(ctx context.Context, actor model.UserDTO, id uuid.UUID, req model.UpsertContentRequest) (*model.ContentDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	content, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query content", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if content == nil {
		return nil, helper.NewNotFoundError("Content not found")
	}

	body, err := model.DecodeContentBody(s.validator, req.Type, req.Body)
	if err != nil {
		return nil, helper.NewBadRequestError(err.Error())
	}

	if req.Title != content.Title {
		content.Slug, err = s.uniqueSlug(ctx, req.Title, content.ID)
		if err != nil {
			slog.Error("Failed to derive slug", "error", err)
			return nil, helper.NewInternalServerError("")
		}
	}

	content.Title = req.Title
	content.Type = req.Type
	content.Body = body

	now := s.now()
	saveAsDraft, auto, hasFlags := statusHints(req.Status, req.AutoPublish)
	switch authz.ResolveStatus(actor.Role, saveAsDraft, auto, hasFlags, true) {
	case authz.DispositionPublish:
		content.Status = constant.ContentStatusPublished
		if content.PublishedAt == nil {
			content.PublishedAt = &now
		}
	case authz.DispositionPendingReview:
		content.Status = constant.ContentStatusPendingReview
	case authz.DispositionDraft:
		content.Status = constant.ContentStatusDraft
	case authz.DispositionKeep:
		// keep current status
	}

	if err := s.store.Update(ctx, content); err != nil {
		slog.Error("Failed to update content", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "content.update", "content", &content.ID, content.Status)

	return contentDTO(content), nil
}

// Review resolves a pending item: approval publishes it, rejection returns it
// to draft with the reviewer's reason attached.
func (s *ContentService) Review(ctx context.Context, actor model.UserDTO, id uuid.UUID, req model.ReviewRequest) (*model.ContentDTO, error) {
	if !authz.CanReview(actor.Role) {
		return nil, helper.NewForbiddenError("Reviewer access required")
	}

	content, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query content", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if content == nil {
		return nil, helper.NewNotFoundError("Content not found")
	}
	if content.Status != constant.ContentStatusPendingReview {
		return nil, helper.NewBadRequestError("Content is not pending review")
	}

	now := s.now()
	content.ReviewedBy = &actor.ID

	action := "content.approve"
	if req.Approve {
		content.Status = constant.ContentStatusPublished
		content.RejectionReason = nil
		if content.PublishedAt == nil {
			content.PublishedAt = &now
		}
	} else {
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return nil, helper.NewBadRequestError("rejection_reason is required")
		}
		content.Status = constant.ContentStatusDraft
		content.RejectionReason = &reason
		action = "content.reject"
	}

	if err := s.store.Update(ctx, content); err != nil {
		slog.Error("Failed to update content", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, action, "content", &content.ID, "")

	return contentDTO(content), nil
}

func (s *ContentService) Archive(ctx context.Context, actor model.UserDTO, id uuid.UUID) (*model.ContentDTO, error) {
	if !authz.CanManageContent(actor.Role) {
		return nil, helper.NewForbiddenError("Content manager access required")
	}

	content, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query content", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if content == nil {
		return nil, helper.NewNotFoundError("Content not found")
	}

	// Archiving never clears published_at; the publish history survives.
	content.Status = constant.ContentStatusArchived

	if err := s.store.Update(ctx, content); err != nil {
		slog.Error("Failed to update content", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "content.archive", "content", &content.ID, "")

	return contentDTO(content), nil
}

func (s *ContentService) Get(ctx context.Context, actor model.UserDTO, id uuid.UUID) (*model.ContentDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	content, err := s.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query content", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if content == nil {
		return nil, helper.NewNotFoundError("Content not found")
	}
	return contentDTO(content), nil
}

func (s *ContentService) ListAdmin(ctx context.Context, actor model.UserDTO, status string) ([]model.ContentDTO, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	contents, err := s.store.List(ctx, status)
	if err != nil {
		slog.Error("Failed to list contents", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	return contentDTOs(contents), nil
}

func (s *ContentService) ListPublished(ctx context.Context) ([]model.ContentDTO, error) {
	contents, err := s.store.ListPublished(ctx)
	if err != nil {
		slog.Error("Failed to list contents", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	return contentDTOs(contents), nil
}

func (s *ContentService) GetPublishedBySlug(ctx context.Context, slug string) (*model.ContentDTO, error) {
	content, err := s.store.FindPublishedBySlug(ctx, slug)
	if err != nil {
		slog.Error("Failed to query content", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if content == nil {
		return nil, helper.NewNotFoundError("Content not found")
	}
	return contentDTO(content), nil
}

func (s *ContentService) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	base := helper.Slugify(title)
	slug := base
	for i := 2; ; i++ {
		exists, err := s.store.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func contentDTO(c *entity.Content) *model.ContentDTO {
	return &model.ContentDTO{
		ID:              c.ID,
		Title:           c.Title,
		Slug:            c.Slug,
		Type:            c.Type,
		Body:            c.Body,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		CreatedBy:       c.CreatedBy,
		ReviewedBy:      c.ReviewedBy,
		PublishedAt:     c.PublishedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func contentDTOs(contents []*entity.Content) []model.ContentDTO {
	dtos := make([]model.ContentDTO, 0, len(contents))
	for _, c := range contents {
		dtos = append(dtos, *contentDTO(c))
	}
	return dtos
}
