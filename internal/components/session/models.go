package session

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Identity is the public-safe projection of a user stored in a session.
	// It never carries the password hash.
	Identity struct {
		UserID   uuid.UUID `json:"user_id"`
		Username string    `json:"username"`
	}

	// Session binds an opaque token to an identity until it expires.
	Session struct {
		Token     uuid.UUID `json:"token"`
		Identity  Identity  `json:"identity"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)
