package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"xpoll/internal/domain/user"
)

type UserRepo struct {
	db *sql.DB
}

var _ user.Repository = (*UserRepo)(nil)

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	u.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, credential, created_at) VALUES (?, ?, ?)`,
		u.Username, u.CredentialHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("sqlite: insert user: %w", err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: user id: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, credential, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.CredentialHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: select user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, credential, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.CredentialHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: select user: %w", err)
	}
	return u, nil
}
