package service

import (
	"context"
	"log/slog"
	"time"

	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/google/uuid"
)

type activityStore interface {
	Insert(ctx context.Context, l *entity.ActivityLog) error
	List(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}

// ActivityService writes the audit trail. Writes are best-effort: a failed
// insert is logged and never surfaced to the caller.
type ActivityService struct {
	store activityStore
}

func NewActivityService(store activityStore) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) Record(ctx context.Context, actorID *uuid.UUID, action, entityName string, entityID *uuid.UUID, detail string) {
	err := s.store.Insert(ctx, &entity.ActivityLog{
		ID:        helper.NewUUID(),
		ActorID:   actorID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("Failed to write activity log", "action", action, "entity", entityName, "error", err)
	}
}

func (s *ActivityService) List(ctx context.Context, limit int) ([]model.ActivityLogDTO, error) {
	logs, err := s.store.List(ctx, limit)
	if err != nil {
		slog.Error("Failed to list activity logs", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	dtos := make([]model.ActivityLogDTO, 0, len(logs))
	for _, l := range logs {
		dtos = append(dtos, model.ActivityLogDTO{
			ID:        l.ID,
			ActorID:   l.ActorID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return dtos, nil
}
