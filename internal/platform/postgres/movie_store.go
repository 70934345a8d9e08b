package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/store"
)

const movieColumns = `id, name, description, duration, image_path, image_local_path,
		classification, category_id, created_at`

// PostgresMovieStore implements the store.MovieStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMovieStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMovieStore creates a new PostgreSQL implementation of the MovieStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMovieStore(db store.DBTX, logger *slog.Logger) *PostgresMovieStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMovieStore{
		db:     db,
		logger: logger.With(slog.String("component", "movie_store")),
	}
}

// Ensure PostgresMovieStore implements store.MovieStore interface
var _ store.MovieStore = (*PostgresMovieStore)(nil)

// WithTx implements store.MovieStore.WithTx
func (s *PostgresMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	return &PostgresMovieStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var (
		m              domain.Movie
		imagePath      sql.NullString
		imageLocalPath sql.NullString
	)
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Duration,
		&imagePath,
		&imageLocalPath,
		&m.Classification,
		&m.CategoryID,
		&m.CreatedAt,
	)
	m.ImagePath = imagePath.String
	m.ImageLocalPath = imageLocalPath.String
	return m, err
}

// nullIfEmpty stores empty optional strings as NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *PostgresMovieStore) queryMovies(ctx context.Context, log *slog.Logger, query string, args ...any) ([]domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query movies", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			log.Error("failed to scan movie row", slog.String("error", err.Error()))
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return movies, nil
}

// List implements store.MovieStore.List
func (s *PostgresMovieStore) List(ctx context.Context, page domain.Page) ([]domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing movies",
		slog.Int("page_number", page.Number),
		slog.Int("page_size", page.Size))

	return s.queryMovies(ctx, log, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY name ASC, id ASC
		LIMIT $1 OFFSET $2
	`, page.Size, page.Offset())
}

// Count implements store.MovieStore.Count
func (s *PostgresMovieStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count movies",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return total, nil
}

// ListByCategory implements store.MovieStore.ListByCategory
func (s *PostgresMovieStore) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.queryMovies(ctx, log, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE category_id = $1
		ORDER BY name ASC, id ASC
	`, categoryID)
}

// Search implements store.MovieStore.Search
func (s *PostgresMovieStore) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pattern := "%" + escapeLike(strings.TrimSpace(term)) + "%"
	log.Debug("searching movies", slog.String("term", term))

	return s.queryMovies(ctx, log, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\'
		ORDER BY name ASC, id ASC
	`, pattern)
}

// GetByID implements store.MovieStore.GetByID
func (s *PostgresMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	m, err := scanMovie(s.db.QueryRowContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("movie not found", slog.Int64("movie_id", id))
			return nil, store.ErrMovieNotFound
		}
		log.Error("failed to get movie by ID",
			slog.String("error", err.Error()),
			slog.Int64("movie_id", id))
		return nil, MapError(err)
	}
	return &m, nil
}

// ExistsByID implements store.MovieStore.ExistsByID
func (s *PostgresMovieStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check movie existence",
			slog.String("error", err.Error()),
			slog.Int64("movie_id", id))
		return false, MapError(err)
	}
	return exists, nil
}

// ExistsByName implements store.MovieStore.ExistsByName
func (s *PostgresMovieStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM movies WHERE LOWER(name) = LOWER($1))`,
		strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check movie name",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// mapMovieWriteError translates constraint violations raised by movie writes.
func mapMovieWriteError(err error) error {
	switch {
	case IsUniqueViolation(err):
		return MapUniqueViolation(err, store.ErrMovieExists)
	case IsForeignKeyViolation(err):
		return store.ErrUnknownCategory
	default:
		return MapError(err)
	}
}

// Create implements store.MovieStore.Create
// Returns store.ErrMovieExists for a taken name and store.ErrUnknownCategory
// when the category does not exist.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := movie.Validate(); err != nil {
		log.Warn("movie validation failed during create", slog.String("error", err.Error()))
		return err
	}
	movie.Name = strings.TrimSpace(movie.Name)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO movies (name, description, duration, image_path, image_local_path,
			classification, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		movie.Name,
		movie.Description,
		movie.Duration,
		nullIfEmpty(movie.ImagePath),
		nullIfEmpty(movie.ImageLocalPath),
		int(movie.Classification),
		movie.CategoryID,
		movie.CreatedAt,
	).Scan(&movie.ID)
	if err != nil {
		log.Warn("failed to create movie",
			slog.String("error", err.Error()),
			slog.String("name", movie.Name),
			slog.Int64("category_id", movie.CategoryID))
		return mapMovieWriteError(err)
	}

	log.Info("movie created successfully",
		slog.Int64("movie_id", movie.ID),
		slog.Int64("category_id", movie.CategoryID))
	return nil
}

// Update implements store.MovieStore.Update
func (s *PostgresMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := movie.Validate(); err != nil {
		log.Warn("movie validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("movie_id", movie.ID))
		return err
	}
	movie.Name = strings.TrimSpace(movie.Name)

	result, err := s.db.ExecContext(ctx, `
		UPDATE movies
		SET name = $1, description = $2, duration = $3, image_path = $4,
			image_local_path = $5, classification = $6, category_id = $7, created_at = $8
		WHERE id = $9
	`,
		movie.Name,
		movie.Description,
		movie.Duration,
		nullIfEmpty(movie.ImagePath),
		nullIfEmpty(movie.ImageLocalPath),
		int(movie.Classification),
		movie.CategoryID,
		movie.CreatedAt,
		movie.ID,
	)
	if err != nil {
		log.Warn("failed to update movie",
			slog.String("error", err.Error()),
			slog.Int64("movie_id", movie.ID))
		return mapMovieWriteError(err)
	}

	if err := CheckRowsAffected(result, store.ErrMovieNotFound); err != nil {
		log.Debug("movie not found for update", slog.Int64("movie_id", movie.ID))
		return err
	}

	log.Info("movie updated successfully", slog.Int64("movie_id", movie.ID))
	return nil
}

// Delete implements store.MovieStore.Delete
func (s *PostgresMovieStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete movie",
			slog.String("error", err.Error()),
			slog.Int64("movie_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrMovieNotFound); err != nil {
		log.Debug("movie not found for delete", slog.Int64("movie_id", id))
		return err
	}

	log.Info("movie deleted successfully", slog.Int64("movie_id", id))
	return nil
}

// DeleteByCategory implements store.MovieStore.DeleteByCategory
func (s *PostgresMovieStore) DeleteByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	movies, err := s.queryMovies(ctx, log, `
		DELETE FROM movies
		WHERE category_id = $1
		RETURNING `+movieColumns, categoryID)
	if err != nil {
		return nil, err
	}

	log.Info("movies deleted with category",
		slog.Int64("category_id", categoryID),
		slog.Int("count", len(movies)))
	return movies, nil
}
