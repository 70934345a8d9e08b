package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/events"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/store"
)

// CategoryService provides category operations.
type CategoryService interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]domain.Category, error)

	// Get returns store.ErrCategoryNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*domain.Category, error)

	// Create adds a category. A name already in use, ignoring case, yields
	// store.ErrCategoryExists.
	Create(ctx context.Context, name string) (*domain.Category, error)

	// Update renames the category identified by id. category.ID must equal id.
	Update(ctx context.Context, id int64, category *domain.Category) error

	// Delete removes a category together with its movies. Each removed movie
	// is announced with a MovieDeleted event so its image is cleaned up.
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	db       store.TxBeginner
	store    store.CategoryStore
	movies   store.MovieStore
	emitter  events.EventEmitter
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewCategoryService creates a new CategoryService.
// It returns an error if any of the required dependencies are nil.
func NewCategoryService(
	db store.TxBeginner,
	categoryStore store.CategoryStore,
	movieStore store.MovieStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CategoryService, error) {
	if db == nil || categoryStore == nil || movieStore == nil || emitter == nil {
		return nil, &ServiceError{
			Service:   "category",
			Operation: "create_service",
			Message:   "db, categoryStore, movieStore and emitter are required",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryService{
		db:       db,
		store:    categoryStore,
		movies:   movieStore,
		emitter:  emitter,
		logger:   logger.With("component", "category_service"),
		timeFunc: time.Now,
	}, nil
}

// List implements CategoryService.
func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list categories", "error", err)
		return nil, NewServiceError("category", "list", "failed to list categories", err)
	}
	return categories, nil
}

// Get implements CategoryService.
func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get category",
				"error", err,
				"category_id", id)
		}
		return nil, NewServiceError("category", "get", "failed to get category", err)
	}
	return category, nil
}

// Create implements CategoryService.
func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	category.CreatedAt = s.timeFunc().UTC()

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)

		exists, err := txStore.ExistsByName(ctx, category.Name)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrCategoryExists
		}
		return txStore.Create(ctx, category)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("attempted to create duplicate category", "name", category.Name)
		} else {
			log.Error("failed to create category", "error", err, "name", category.Name)
		}
		return nil, NewServiceError("category", "create", "failed to create category", err)
	}

	log.Info("category created", "category_id", category.ID)
	emitCatalogEvent(ctx, s.emitter, s.logger, events.CategoryCreated, category.ID, category)
	return category, nil
}

// Update implements CategoryService.
func (s *categoryService) Update(ctx context.Context, id int64, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if category == nil || category.ID != id {
		return ErrIDMismatch
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := category.Validate(); err != nil {
		return err
	}
	category.CreatedAt = s.timeFunc().UTC()

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)

		exists, err := txStore.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrCategoryNotFound
		}
		return txStore.Update(ctx, category)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrDuplicate) {
			log.Error("failed to update category", "error", err, "category_id", id)
		}
		return NewServiceError("category", "update", "failed to update category", err)
	}

	log.Info("category updated", "category_id", id)
	emitCatalogEvent(ctx, s.emitter, s.logger, events.CategoryUpdated, id, category)
	return nil
}

// Delete implements CategoryService.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The movies are removed explicitly, rather than left to the cascade, so
	// their image paths are known once the transaction commits.
	var removed []domain.Movie
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		removed, err = s.movies.WithTx(tx).DeleteByCategory(ctx, id)
		if err != nil {
			return err
		}
		return s.store.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete category", "error", err, "category_id", id)
		}
		return NewServiceError("category", "delete", "failed to delete category", err)
	}

	log.Info("category deleted", "category_id", id, "movies_deleted", len(removed))
	emitCatalogEvent(ctx, s.emitter, s.logger, events.CategoryDeleted, id, nil)
	for _, m := range removed {
		emitCatalogEvent(ctx, s.emitter, s.logger, events.MovieDeleted, m.ID,
			events.MoviePayload{Name: m.Name, StaleImageLocalPath: m.ImageLocalPath})
	}
	return nil
}
