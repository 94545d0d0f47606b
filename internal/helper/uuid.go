package helper

import "github.com/google/uuid"

// NewUUID returns a time-ordered UUIDv7 when available, falling back to v4.
func NewUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
