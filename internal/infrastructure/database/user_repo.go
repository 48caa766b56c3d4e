package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		user.ID, user.Username, user.PasswordHash, user.Avatar,
	)
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&createdAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findBy(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findBy(ctx, `WHERE username = $1`, username)
}

func (r *UserRepository) findBy(ctx context.Context, where string, arg any) (*entities.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, avatar, created_at FROM users `+where, arg)
	var u entities.User
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Avatar, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return &u, nil
}
