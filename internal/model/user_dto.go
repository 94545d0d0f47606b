package model

import (
	"time"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role" validate:"omitempty,staff_role"`
}
