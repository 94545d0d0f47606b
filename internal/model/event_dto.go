package model

import (
	"time"

	"github.com/google/uuid"
)

type UpsertEventRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"max=10000"`
	Type        string    `json:"type" validate:"required,event_type"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Location    string    `json:"location" validate:"max=255"`
	Capacity    int       `json:"capacity" validate:"gte=0"`

	Status      *string `json:"status" validate:"omitempty,oneof=draft pending_review"`
	AutoPublish *bool   `json:"auto_publish"`
}

type EventDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	Location        string     `json:"location"`
	Capacity        int        `json:"capacity"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	ReviewedBy      *uuid.UUID `json:"reviewed_by,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
