package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*User
	byName map[string]int64
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[int64]*User),
		byName: make(map[string]int64),
		nextID: 1,
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[u.Username]; ok {
		return ErrUsernameTaken
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byName[u.Username] = u.ID
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Verify(hashed, plain string) error {
	if hashed != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), fakeHasher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "john", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected a generated user id")
	}
	if u.CredentialHash == "s3cret" || u.CredentialHash == "" {
		t.Fatal("credential should be stored hashed")
	}

	if _, err := svc.Register(ctx, "john", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, "  ", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(ctx, "ann", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", strings.Repeat("x", 73)); !errors.Is(err, ErrCredentialTooLong) {
		t.Fatalf("expected ErrCredentialTooLong, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), fakeHasher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "john", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Verify(ctx, "john", "s3cret"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.Verify(ctx, "john", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// An unknown username yields the same error as a bad credential.
	if err := svc.Verify(ctx, "ghost", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), fakeHasher{})

	if _, err := svc.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
