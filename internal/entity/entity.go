package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OTP struct {
	ID         uuid.UUID
	Email      string
	Code       string
	Purpose    string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	Attempts   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Content struct {
	ID              uuid.UUID
	Title           string
	Slug            string
	Type            string
	Body            json.RawMessage
	Status          string
	RejectionReason *string
	CreatedBy       uuid.UUID
	ReviewedBy      *uuid.UUID
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Event struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Type            string
	Status          string
	RejectionReason *string
	StartsAt        time.Time
	EndsAt          time.Time
	Location        string
	Capacity        int
	CreatedBy       uuid.UUID
	ReviewedBy      *uuid.UUID
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EventRegistration struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type Application struct {
	ID         uuid.UUID
	Kind       string
	FullName   string
	Email      string
	Phone      string
	Motivation string
	Details    json.RawMessage
	CreatedAt  time.Time
}

type TeacherEnrollment struct {
	ID                   uuid.UUID
	FullName             string
	Email                string
	Phone                string
	City                 string
	Country              string
	MeditationExperience string
	TeachingExperience   string
	Availability         string
	Referral             string
	CreatedAt            time.Time
}

type ActivityLog struct {
	ID        uuid.UUID
	ActorID   *uuid.UUID
	Action    string
	Entity    string
	EntityID  *uuid.UUID
	Detail    string
	CreatedAt time.Time
}
