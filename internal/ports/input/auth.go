package input

import (
	"context"

	"rally/internal/domain/entities"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (*entities.User, string, error)
	Login(ctx context.Context, username, password string) (*entities.User, string, error)
}
