package user

import (
	"context"
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	CredentialHash string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Hasher keeps the hashing scheme out of the domain layer.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) error
}
