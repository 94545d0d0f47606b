package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UpsertContentRequest struct {
	Title string          `json:"title" validate:"required,min=3,max=255"`
	Type  string          `json:"type" validate:"required,content_type"`
	Body  json.RawMessage `json:"body" validate:"required"`

	// Status "draft" is the explicit save-as-draft hint; "pending_review"
	// submits for review. AutoPublish asks for a direct publish, honored only
	// for qualifying roles. Both nil on edit means keep the current status.
	Status      *string `json:"status" validate:"omitempty,oneof=draft pending_review"`
	AutoPublish *bool   `json:"auto_publish"`
}

type ReviewRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=2000"`
}

type ContentDTO struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Type            string          `json:"type"`
	Body            json.RawMessage `json:"body"`
	Status          string          `json:"status"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	ReviewedBy      *uuid.UUID      `json:"reviewed_by,omitempty"`
	PublishedAt     *time.Time      `json:"published_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
