// Package auth handles registration, login and JWT issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/fitracker/fitracker/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Service struct {
	users  repository.UserRepository
	cfg    *config.Jwt
	logger *slog.Logger
}

func New(users repository.UserRepository, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{users: users, cfg: cfg, logger: logger}
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, create dto.UserCreate) (*dto.UserRead, error) {
	log := s.logger.With("context", "Register")
	u, err := domain.NewUser(create.Username, create.Email, create.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	log.Info("user registered", "userID", u.ID)
	return toRead(u), nil
}

// Login resolves identity (username or email) and verifies the password.
// Unknown identity and wrong password both map to ErrUnauthorized.
func (s *Service) Login(ctx context.Context, identity, password string) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")
	u, err := s.users.GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		log.Error("login lookup failed", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, domain.ErrUnauthorized
	}
	log.Info("login successful", "userID", u.ID)
	return toRead(u), nil
}

// GenerateToken signs a JWT for the user.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseUserID extracts the user id from verified token claims.
func ParseUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	sub, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

func toRead(u *domain.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
