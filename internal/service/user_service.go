package service

import (
	"context"
	"log/slog"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type activityRecorder interface {
	Record(ctx context.Context, actorID *uuid.UUID, action, entityName string, entityID *uuid.UUID, detail string)
}

type UserService struct {
	users     userStore
	validator *validator.Validate
	activity  activityRecorder
}

func NewUserService(users userStore, validator *validator.Validate, activity activityRecorder) *UserService {
	return &UserService{
		users:     users,
		validator: validator,
		activity:  activity,
	}
}

func (s *UserService) List(ctx context.Context, actor model.UserDTO) ([]model.UserDTO, error) {
	if !authz.CanDelete(actor.Role) {
		return nil, helper.NewForbiddenError("Admin access required")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, *userDTO(u))
	}
	return dtos, nil
}

func (s *UserService) Get(ctx context.Context, actor model.UserDTO, id uuid.UUID) (*model.UserDTO, error) {
	if !authz.CanDelete(actor.Role) && actor.ID != id {
		return nil, helper.NewForbiddenError("Admin access required")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if user == nil {
		return nil, helper.NewNotFoundError("User not found")
	}
	return userDTO(user), nil
}

// Update edits a user record. Role changes require admin and are always
// rejected on the actor's own record, even for admins.
func (s *UserService) Update(ctx context.Context, actor model.UserDTO, id uuid.UUID, req model.UpdateUserRequest) (*model.UserDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError(helper.ValidationMessage(err))
	}

	if !authz.CanDelete(actor.Role) && actor.ID != id {
		return nil, helper.NewForbiddenError("Admin access required")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	if user == nil {
		return nil, helper.NewNotFoundError("User not found")
	}

	if req.Role != nil && *req.Role != user.Role {
		if !authz.CanDelete(actor.Role) {
			return nil, helper.NewForbiddenError("Admin access required")
		}
		if actor.ID == id {
			return nil, helper.NewForbiddenError("You cannot change your own role")
		}
		user.Role = *req.Role
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if err := s.users.Update(ctx, user); err != nil {
		slog.Error("Failed to update user", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "user.update", "user", &user.ID, "")

	return userDTO(user), nil
}

func (s *UserService) Delete(ctx context.Context, actor model.UserDTO, id uuid.UUID) error {
	if !authz.CanDelete(actor.Role) {
		return helper.NewForbiddenError("Admin access required")
	}
	if actor.ID == id {
		return helper.NewForbiddenError("You cannot delete your own account")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to query user", "error", err)
		return helper.NewInternalServerError("")
	}
	if user == nil {
		return helper.NewNotFoundError("User not found")
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		slog.Error("Failed to delete user", "error", err)
		return helper.NewInternalServerError("")
	}

	s.activity.Record(ctx, &actor.ID, "user.delete", "user", &id, "")

	return nil
}
