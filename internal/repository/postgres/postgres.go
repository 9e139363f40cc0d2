package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository   = (*Repository)(nil)
	_ repository.OfficeRepository = (*Repository)(nil)
)

// CreateUser inserts a user. A unique violation on name maps to
// ErrDuplicate; the constraint is the only duplicate check performed, so
// concurrent signups with the same name cannot race past each other.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return repository.ErrDuplicate
			case "23514", "22P02":
				return repository.ErrInvalidArgument
			}
		}
		return err
	}
	return nil
}

// GetUserByName fetches a user by name.
func (r *Repository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	const query = `SELECT id, name, password_hash, created_at FROM users WHERE name = $1`
	row := r.pool.QueryRow(ctx, query, name)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, name, password_hash, created_at FROM users WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListOfficeKinds returns the seeded office categories in display order.
func (r *Repository) ListOfficeKinds(ctx context.Context) ([]domain.OfficeKind, error) {
	const query = `SELECT id, name, lat_offset, lng_offset FROM office_kinds ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kinds := make([]domain.OfficeKind, 0)
	for rows.Next() {
		var k domain.OfficeKind
		if err := rows.Scan(&k.ID, &k.Name, &k.LatOffset, &k.LngOffset); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}
