package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/family-service/internal/auth"
	"github.com/spec-kit/family-service/internal/config"
	"github.com/spec-kit/family-service/internal/domain"
	"github.com/spec-kit/family-service/internal/repository"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and issues its first token. Uniqueness is
// pre-checked against the store, and the insert itself reports the same
// sentinel on a constraint violation, so two concurrent registrations with
// the same email both resolve to ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if _, err := s.users.GetByName(ctx, name); err == nil {
		return nil, "", domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokenMgr.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a token. An unknown
// email and a wrong password surface as distinct sentinels; the handler
// keeps the reason key identical for both and only the field tag differs.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnknownEmail
		}
		return "", err
	}

	match, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", domain.ErrWrongPassword
	}

	return s.tokenMgr.GenerateToken(user.ID, user.Name)
}

// ListUsers returns all accounts; password hashes stay behind.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
