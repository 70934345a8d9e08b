package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestNewPostgresCategoryStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresCategoryStore(nil, nil) })
}

func TestPostgresCategoryStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, created_at FROM categories ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(2), "Action", now).
			AddRow(int64(1), "Drama", now))

	categories, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Action", categories[0].Name)
	assert.Equal(t, int64(1), categories[1].ID)
}

func TestPostgresCategoryStore_ListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectQuery("FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	categories, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestPostgresCategoryStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		mock.ExpectQuery("FROM categories WHERE id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
				AddRow(int64(7), "Comedy", time.Now()))

		c, err := s.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Comedy", c.Name)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		mock.ExpectQuery("FROM categories WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

		_, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPostgresCategoryStore_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("LOWER\\(name\\) = LOWER\\(\\$1\\)").WithArgs("Drama").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := s.ExistsByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByName(context.Background(), "  Drama ")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostgresCategoryStore_Create(t *testing.T) {
	t.Run("success sets id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)
		c, err := domain.NewCategory(" Horror ")
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Horror", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		require.NoError(t, s.Create(context.Background(), c))
		assert.Equal(t, int64(11), c.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)
		c, _ := domain.NewCategory("Horror")

		mock.ExpectQuery("INSERT INTO categories").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := s.Create(context.Background(), c)
		assert.ErrorIs(t, err, store.ErrCategoryExists)
	})

	t.Run("invalid category never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		err := s.Create(context.Background(), &domain.Category{Name: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresCategoryStore_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		mock.ExpectExec("UPDATE categories").
			WithArgs("Sci-Fi", sqlmock.AnyArg(), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Update(context.Background(), &domain.Category{ID: 4, Name: "Sci-Fi", CreatedAt: time.Now()})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		mock.ExpectExec("UPDATE categories").WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), &domain.Category{ID: 4, Name: "Sci-Fi"})
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	})

	t.Run("duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresCategoryStore(db, nil)

		mock.ExpectExec("UPDATE categories").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := s.Update(context.Background(), &domain.Category{ID: 4, Name: "Drama"})
		assert.ErrorIs(t, err, store.ErrCategoryExists)
	})
}

func TestPostgresCategoryStore_Delete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM categories").WithArgs(int64(5)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM categories").WithArgs(int64(5)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: store.ErrCategoryNotFound,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM categories").WithArgs(int64(5)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresCategoryStore(db, nil)
			tt.setup(mock)

			err := s.Delete(context.Background(), 5)
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, store.ErrNotFound):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestPostgresCategoryStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM categories").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, 1)
	})
	assert.NoError(t, err)
}
