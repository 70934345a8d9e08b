package store

import (
	"context"
	"database/sql"

	"github.com/moviecatalog/movie-api/internal/domain"
)

// MovieStore defines the interface for movie persistence.
type MovieStore interface {
	// List returns one page of movies ordered by name.
	List(ctx context.Context, page domain.Page) ([]domain.Movie, error)

	// Count returns the total number of movies.
	Count(ctx context.Context) (int, error)

	// ListByCategory returns the movies of one category ordered by name.
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error)

	// Search returns movies whose name or description contains term,
	// ignoring case. An empty term matches every movie.
	Search(ctx context.Context, term string) ([]domain.Movie, error)

	// GetByID returns ErrMovieNotFound if the movie does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create inserts the movie and sets its ID.
	// Returns ErrMovieExists for a taken name and ErrUnknownCategory for a
	// category that does not exist.
	Create(ctx context.Context, movie *domain.Movie) error

	// Update overwrites every mutable column of an existing movie.
	Update(ctx context.Context, movie *domain.Movie) error

	// Delete removes a movie. Returns ErrMovieNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteByCategory removes every movie of a category and returns the
	// removed rows. An empty or unknown category yields an empty slice.
	DeleteByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error)

	// WithTx returns a MovieStore bound to the given transaction.
	WithTx(tx *sql.Tx) MovieStore
}
