package repository

import (
	"context"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
)

// UserRepository persists citizen accounts. CreateUser relies on the store's
// unique constraint on name; callers must not pre-check for duplicates.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByName(ctx context.Context, name string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// OfficeRepository provides the seeded office categories shown on the map.
type OfficeRepository interface {
	ListOfficeKinds(ctx context.Context) ([]domain.OfficeKind, error)
}
