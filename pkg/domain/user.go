package domain

import (
	"fmt"
	"time"

	"github.com/fitracker/fitracker/pkg/utils"
	"github.com/google/uuid"
)

// User represents an account holder.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with a freshly hashed password.
func NewUser(username, email, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if email != "" && !utils.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hashed,
	}, nil
}
