package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/docuforge/docuforge/internal/common"
	"github.com/docuforge/docuforge/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

type userRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewUserRepository(db *DB, logger *slog.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, username, email, passwordHash string) (*entity.User, error) {
	u := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	err := r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`),
		u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		r.logger.Error("failed to create user", "username", username, "error", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.scanOne(r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`), username))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.scanOne(r.db.sql.QueryRowContext(ctx, r.db.rebind(
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`), id))
}

func (r *userRepository) scanOne(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
