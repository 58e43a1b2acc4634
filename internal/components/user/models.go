package user

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the public projection of a user shown on community pages.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
