package model

import (
	"time"

	"github.com/google/uuid"
)

type CreateEnrollmentRequest struct {
	FullName             string `json:"full_name" validate:"required,min=3,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"max=32"`
	City                 string `json:"city" validate:"max=100"`
	Country              string `json:"country" validate:"max=100"`
	MeditationExperience string `json:"meditation_experience" validate:"required,max=5000"`
	TeachingExperience   string `json:"teaching_experience" validate:"max=5000"`
	Availability         string `json:"availability" validate:"max=255"`
	Referral             string `json:"referral" validate:"max=255"`
	Code                 string `json:"code" validate:"required,len=6,numeric"`
}

type EnrollmentDTO struct {
	ID                   uuid.UUID `json:"id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	City                 string    `json:"city"`
	Country              string    `json:"country"`
	MeditationExperience string    `json:"meditation_experience"`
	TeachingExperience   string    `json:"teaching_experience"`
	Availability         string    `json:"availability"`
	Referral             string    `json:"referral"`
	CreatedAt            time.Time `json:"created_at"`
}
