package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/events"
	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/store"
)

// ImageUpload is an image file submitted alongside a movie.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// MoviePage is one page of the movie listing.
type MoviePage struct {
	TotalMovies int
	PageNumber  int
	PageSize    int
	TotalPages  int
	Movies      []domain.Movie
}

// MovieService provides movie operations.
type MovieService interface {
	// ListPage returns ErrNoMoviesFound when the requested page is empty.
	ListPage(ctx context.Context, page domain.Page) (*MoviePage, error)

	Get(ctx context.Context, id int64) (*domain.Movie, error)

	// ListByCategory returns store.ErrCategoryNotFound for an unknown category
	// and ErrNoMoviesFound when the category has no movies.
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error)

	// Search matches term case-insensitively against name and description.
	Search(ctx context.Context, term string) ([]domain.Movie, error)

	// Create stores movie and, when image is non-nil, its image.
	Create(ctx context.Context, movie *domain.Movie, image *ImageUpload) (*domain.Movie, error)

	// Update replaces the movie identified by id. movie.ID must equal id.
	// A non-nil image replaces the current one; the old file is removed after
	// the change commits.
	Update(ctx context.Context, id int64, movie *domain.Movie, image *ImageUpload) error

	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	db         store.TxBeginner
	movies     store.MovieStore
	categories store.CategoryStore
	images     filestore.ImageStore
	emitter    events.EventEmitter
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewMovieService creates a new MovieService.
// It returns an error if any of the required dependencies are nil.
func NewMovieService(
	db store.TxBeginner,
	movieStore store.MovieStore,
	categoryStore store.CategoryStore,
	images filestore.ImageStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (MovieService, error) {
	if db == nil || movieStore == nil || categoryStore == nil || images == nil || emitter == nil {
		return nil, &ServiceError{
			Service:   "movie",
			Operation: "create_service",
			Message:   "db, movieStore, categoryStore, images and emitter are required",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &movieService{
		db:         db,
		movies:     movieStore,
		categories: categoryStore,
		images:     images,
		emitter:    emitter,
		logger:     logger.With("component", "movie_service"),
		timeFunc:   time.Now,
	}, nil
}

// ListPage implements MovieService.
func (s *movieService) ListPage(ctx context.Context, page domain.Page) (*MoviePage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, err := s.movies.Count(ctx)
	if err != nil {
		log.Error("failed to count movies", "error", err)
		return nil, NewServiceError("movie", "list", "failed to count movies", err)
	}

	movies, err := s.movies.List(ctx, page)
	if err != nil {
		log.Error("failed to list movies",
			"error", err,
			"page_number", page.Number,
			"page_size", page.Size)
		return nil, NewServiceError("movie", "list", "failed to list movies", err)
	}
	if len(movies) == 0 {
		return nil, ErrNoMoviesFound
	}

	return &MoviePage{
		TotalMovies: total,
		PageNumber:  page.Number,
		PageSize:    page.Size,
		TotalPages:  page.TotalPages(total),
		Movies:      movies,
	}, nil
}

// Get implements MovieService.
func (s *movieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get movie",
				"error", err,
				"movie_id", id)
		}
		return nil, NewServiceError("movie", "get", "failed to get movie", err)
	}
	return movie, nil
}

// ListByCategory implements MovieService.
func (s *movieService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.categories.ExistsByID(ctx, categoryID)
	if err != nil {
		log.Error("failed to check category", "error", err, "category_id", categoryID)
		return nil, NewServiceError("movie", "list_by_category", "failed to check category", err)
	}
	if !exists {
		return nil, store.ErrCategoryNotFound
	}

	movies, err := s.movies.ListByCategory(ctx, categoryID)
	if err != nil {
		log.Error("failed to list movies by category", "error", err, "category_id", categoryID)
		return nil, NewServiceError("movie", "list_by_category", "failed to list movies", err)
	}
	if len(movies) == 0 {
		return nil, ErrNoMoviesFound
	}
	return movies, nil
}

// Search implements MovieService.
func (s *movieService) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	movies, err := s.movies.Search(ctx, term)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search movies", "error", err)
		return nil, NewServiceError("movie", "search", "failed to search movies", err)
	}
	if len(movies) == 0 {
		return nil, ErrNoMoviesFound
	}
	return movies, nil
}

// Create implements MovieService.
func (s *movieService) Create(
	ctx context.Context,
	movie *domain.Movie,
	image *ImageUpload,
) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if movie == nil {
		return nil, domain.NewValidationError("", "movie is required", domain.ErrValidation)
	}
	movie.ID = 0
	movie.Name = strings.TrimSpace(movie.Name)
	if err := movie.Validate(); err != nil {
		return nil, err
	}
	// Without an upload the client may reference an external image URL.
	movie.ImageLocalPath = ""
	movie.CreatedAt = s.timeFunc().UTC()

	stored, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		movie.ImagePath = stored.URL
		movie.ImageLocalPath = stored.LocalPath
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkCategory(ctx, tx, movie.CategoryID); err != nil {
			return err
		}

		txMovies := s.movies.WithTx(tx)
		exists, err := txMovies.ExistsByName(ctx, movie.Name)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrMovieExists
		}
		return txMovies.Create(ctx, movie)
	})
	if err != nil {
		s.discardImage(ctx, stored)
		if isExpectedStoreError(err) {
			log.Debug("movie rejected", "error", err, "name", movie.Name)
		} else {
			log.Error("failed to create movie", "error", err, "name", movie.Name)
		}
		return nil, NewServiceError("movie", "create", "failed to create movie", err)
	}

	log.Info("movie created", "movie_id", movie.ID)
	emitCatalogEvent(ctx, s.emitter, s.logger, events.MovieCreated, movie.ID,
		events.MoviePayload{Name: movie.Name})
	return movie, nil
}

// Update implements MovieService.
func (s *movieService) Update(
	ctx context.Context,
	id int64,
	movie *domain.Movie,
	image *ImageUpload,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if movie == nil || movie.ID != id {
		return ErrIDMismatch
	}
	movie.Name = strings.TrimSpace(movie.Name)
	if err := movie.Validate(); err != nil {
		return err
	}
	movie.CreatedAt = s.timeFunc().UTC()

	stored, err := s.saveImage(ctx, image)
	if err != nil {
		return err
	}

	var stale string
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txMovies := s.movies.WithTx(tx)

		current, err := txMovies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkCategory(ctx, tx, movie.CategoryID); err != nil {
			return err
		}

		switch {
		case stored != nil:
			movie.ImagePath = stored.URL
			movie.ImageLocalPath = stored.LocalPath
			stale = current.ImageLocalPath
		case movie.ImagePath != "" && movie.ImagePath != current.ImagePath:
			// An external URL replaces the uploaded file.
			movie.ImageLocalPath = ""
			stale = current.ImageLocalPath
		default:
			movie.ImagePath = current.ImagePath
			movie.ImageLocalPath = current.ImageLocalPath
		}

		return txMovies.Update(ctx, movie)
	})
	if err != nil {
		s.discardImage(ctx, stored)
		if isExpectedStoreError(err) {
			log.Debug("movie update rejected", "error", err, "movie_id", id)
		} else {
			log.Error("failed to update movie", "error", err, "movie_id", id)
		}
		return NewServiceError("movie", "update", "failed to update movie", err)
	}

	log.Info("movie updated", "movie_id", id, "image_replaced", stale != "")
	emitCatalogEvent(ctx, s.emitter, s.logger, events.MovieUpdated, id,
		events.MoviePayload{Name: movie.Name, StaleImageLocalPath: stale})
	return nil
}

// Delete implements MovieService.
func (s *movieService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *domain.Movie
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txMovies := s.movies.WithTx(tx)

		movie, err := txMovies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txMovies.Delete(ctx, id); err != nil {
			return err
		}
		deleted = movie
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete movie", "error", err, "movie_id", id)
		}
		return NewServiceError("movie", "delete", "failed to delete movie", err)
	}

	log.Info("movie deleted", "movie_id", id)
	emitCatalogEvent(ctx, s.emitter, s.logger, events.MovieDeleted, id,
		events.MoviePayload{Name: deleted.Name, StaleImageLocalPath: deleted.ImageLocalPath})
	return nil
}

func (s *movieService) checkCategory(ctx context.Context, tx *sql.Tx, categoryID int64) error {
	exists, err := s.categories.WithTx(tx).ExistsByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrUnknownCategory
	}
	return nil
}

func (s *movieService) saveImage(ctx context.Context, image *ImageUpload) (*filestore.StoredImage, error) {
	if image == nil || image.Content == nil {
		return nil, nil
	}
	stored, err := s.images.Save(ctx, image.Filename, image.Content)
	if err != nil {
		if !isImageRejection(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to store image",
				"error", err,
				"filename", image.Filename)
		}
		return nil, NewServiceError("movie", "save_image", "failed to store image", err)
	}
	return stored, nil
}

// discardImage removes an image saved for a change that did not commit.
func (s *movieService) discardImage(ctx context.Context, stored *filestore.StoredImage) {
	if stored == nil {
		return
	}
	if err := s.images.Delete(ctx, stored.LocalPath); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to remove orphaned image",
			"error", err,
			"local_path", stored.LocalPath)
	}
}

func isExpectedStoreError(err error) bool {
	return errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrInvalidEntity)
}

func isImageRejection(err error) bool {
	return errors.Is(err, filestore.ErrUnsupportedImageType) ||
		errors.Is(err, filestore.ErrImageTooLarge) ||
		errors.Is(err, filestore.ErrEmptyImage)
}
