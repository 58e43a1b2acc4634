package auth

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID `json:"id"`
		Username     string    `json:"username"`
		PasswordHash string    `json:"-"` // Never serialize password hash
		CreatedAt    time.Time `json:"created_at"`
	}

	RegisterIn struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
)
