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

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed categories", slog.Int("count", len(categories)))
	return categories, nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}

	return &c, nil
}

// ExistsByID implements store.CategoryStore.ExistsByID
func (s *PostgresCategoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check category existence",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return false, MapError(err)
	}
	return exists, nil
}

// ExistsByName implements store.CategoryStore.ExistsByName
func (s *PostgresCategoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))`,
		strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check category name",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// Create implements store.CategoryStore.Create
// Returns store.ErrCategoryExists if a category with the same name exists.
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create", slog.String("error", err.Error()))
		return err
	}
	category.Name = strings.TrimSpace(category.Name)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, category.Name, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate category name", slog.String("name", category.Name))
			return MapUniqueViolation(err, store.ErrCategoryExists)
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("name", category.Name))
		return MapError(err)
	}

	log.Info("category created successfully",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return err
	}
	category.Name = strings.TrimSpace(category.Name)

	result, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, created_at = $2
		WHERE id = $3
	`, category.Name, category.CreatedAt, category.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate category name on update",
				slog.Int64("category_id", category.ID),
				slog.String("name", category.Name))
			return MapUniqueViolation(err, store.ErrCategoryExists)
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		log.Debug("category not found for update", slog.Int64("category_id", category.ID))
		return err
	}

	log.Info("category updated successfully", slog.Int64("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
// Movies still referencing the category are removed by the cascade.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		log.Debug("category not found for delete", slog.Int64("category_id", id))
		return err
	}

	log.Info("category deleted successfully", slog.Int64("category_id", id))
	return nil
}
