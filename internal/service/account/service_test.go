package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/vrusha-mor/yojanasaathi/internal/crypto"
	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/repository"
)

type stubUserRepository struct {
	byName  map[string]*domain.User
	creates int
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{byName: make(map[string]*domain.User)}
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	s.creates++
	if _, ok := s.byName[user.Name]; ok {
		return repository.ErrDuplicate
	}
	copied := *user
	s.byName[user.Name] = &copied
	return nil
}

func (s *stubUserRepository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	if user, ok := s.byName[name]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range s.byName {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignupThenLogin(t *testing.T) {
	repo := newStubUserRepository()
	svc := New(repo, crypto.NewBcryptHasher(), testLogger())

	created, err := svc.Signup(context.Background(), "asha", "secret-pass")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("signup should assign an id")
	}
	if string(created.PasswordHash) == "secret-pass" {
		t.Fatal("password must not be stored in the clear")
	}

	logged, err := svc.Login(context.Background(), "asha", "secret-pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if logged.ID != created.ID {
		t.Fatalf("login returned user %q, want %q", logged.ID, created.ID)
	}
}

func TestSignupDuplicateName(t *testing.T) {
	repo := newStubUserRepository()
	svc := New(repo, crypto.NewBcryptHasher(), testLogger())

	if _, err := svc.Signup(context.Background(), "asha", "one"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "asha", "two"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepository()
	svc := New(repo, crypto.NewBcryptHasher(), testLogger())

	if _, err := svc.Signup(context.Background(), "asha", "right"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "asha", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := New(newStubUserRepository(), crypto.NewBcryptHasher(), testLogger())

	if _, err := svc.Login(context.Background(), "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
