package user

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrMissingFields      = errors.New("username and credential required")
	ErrCredentialTooLong  = errors.New("credential longer than 72 bytes")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo   Repository
	hasher Hasher
}

func NewService(repo Repository, hasher Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Register stores a new user with a hashed credential. Username
// uniqueness is enforced by the store, so concurrent registrations of
// the same name cannot both succeed.
func (s *Service) Register(ctx context.Context, username, credential string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || credential == "" {
		return nil, ErrMissingFields
	}
	if len(credential) > 72 {
		return nil, ErrCredentialTooLong
	}

	hashed, err := s.hasher.Hash(credential)
	if err != nil {
		return nil, err
	}

	u := &User{Username: username, CredentialHash: hashed}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Verify reports whether the named user's credential matches. The error
// does not reveal whether the username or the credential was wrong.
func (s *Service) Verify(ctx context.Context, username, credential string) error {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := s.hasher.Verify(u.CredentialHash, credential); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
