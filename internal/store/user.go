package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user ordered by username.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUserName retrieves a user by username, ignoring case.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)

	// IsUserNameUnique reports whether no user has the given username.
	IsUserNameUnique(ctx context.Context, userName string) (bool, error)

	// Create saves a new user to the store.
	// It validates the user and hashes the plaintext password internally.
	// Returns ErrUserNameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
