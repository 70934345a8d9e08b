package store

import (
	"context"
	"database/sql"

	"github.com/moviecatalog/movie-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]domain.Category, error)

	// GetByID returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// ExistsByID reports whether a category with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByName reports whether a category with the given name exists,
	// ignoring case and surrounding whitespace.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create inserts the category and sets its ID.
	// Returns ErrCategoryExists if the name is taken.
	Create(ctx context.Context, category *domain.Category) error

	// Update overwrites name and created_at of an existing category.
	// Returns ErrCategoryNotFound or ErrCategoryExists.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category and, through ON DELETE CASCADE, its movies.
	// Returns ErrCategoryNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CategoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
