package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	Kind       string          `json:"kind" validate:"required,oneof=teacher volunteer"`
	FullName   string          `json:"full_name" validate:"required,min=3,max=100"`
	Email      string          `json:"email" validate:"required,email"`
	Phone      string          `json:"phone" validate:"max=32"`
	Motivation string          `json:"motivation" validate:"max=5000"`
	Details    json.RawMessage `json:"details"`
	Code       string          `json:"code" validate:"required,len=6,numeric"`
}

type ApplicationDTO struct {
	ID         uuid.UUID       `json:"id"`
	Kind       string          `json:"kind"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Motivation string          `json:"motivation"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  time.Time       `json:"created_at"`
}
