package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to register a new user.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"required,min=6"`
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
