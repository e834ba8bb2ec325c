package kernel

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID identifies things that have no database id: notification envelopes,
// placeholder guest emails, uploaded files.
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

func (u UUID) String() string {
	return u.id.String()
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}
