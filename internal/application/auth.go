package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

const defaultAvatar = "/placeholder.svg?height=32&width=32"

type AuthService struct {
	users    output.UserRepository
	sessions output.SessionManager
	newID    func() string
}

func NewAuthService(users output.UserRepository, sessions output.SessionManager) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		newID:    func() string { return uuid.NewString() },
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*entities.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &entities.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: string(hash),
		Avatar:       defaultAvatar,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*entities.User, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}
