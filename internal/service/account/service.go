package account

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/vrusha-mor/yojanasaathi/internal/crypto"
	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/repository"
)

var (
	// ErrDuplicateName indicates the chosen username is taken.
	ErrDuplicateName = errors.New("username already exists")
	// ErrInvalidCredentials indicates no account matches name and password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service handles signup and login against the credential store.
type Service struct {
	users  repository.UserRepository
	hasher crypto.Hasher
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, hasher crypto.Hasher, logger *slog.Logger) Service {
	return Service{users: users, hasher: hasher, logger: logger}
}

// Signup registers a new user. Duplicate names are detected through the
// store's unique constraint, never by a pre-check, so concurrent signups
// cannot both succeed.
func (s Service) Signup(ctx context.Context, name, password string) (*domain.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and returns the account. A missing user and a
// wrong password are indistinguishable to the caller.
func (s Service) Login(ctx context.Context, name, password string) (*domain.User, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}
