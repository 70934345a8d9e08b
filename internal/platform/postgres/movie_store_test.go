package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movieRowColumns = []string{
	"id", "name", "description", "duration", "image_path", "image_local_path",
	"classification", "category_id", "created_at",
}

func movieRow(id int64, name string, imagePath, localPath driver.Value) []driver.Value {
	return []driver.Value{
		id, name, "a description", int64(120), imagePath, localPath,
		int64(domain.ClassificationSixteen), int64(1), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func validMovie() *domain.Movie {
	return &domain.Movie{
		Name:           "Heat",
		Description:    "Crime drama",
		Duration:       170,
		Classification: domain.ClassificationSixteen,
		CategoryID:     1,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestPostgresMovieStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	page, err := domain.NewPage(2, 2)
	require.NoError(t, err)

	mock.ExpectQuery("FROM movies ORDER BY name ASC, id ASC LIMIT \\$1 OFFSET \\$2").
		WithArgs(2, 2).
		WillReturnRows(sqlmock.NewRows(movieRowColumns).
			AddRow(movieRow(3, "Alien", "http://localhost:8080/images/a.png", "a.png")...).
			AddRow(movieRow(4, "Brazil", nil, nil)...))

	movies, err := s.List(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "a.png", movies[0].ImageLocalPath)
	assert.True(t, movies[0].HasImage())
	assert.Equal(t, domain.ClassificationSixteen, movies[0].Classification)
	assert.Empty(t, movies[1].ImagePath)
	assert.False(t, movies[1].HasImage())
	assert.Equal(t, 120, movies[1].Duration)
}

func TestPostgresMovieStore_Count(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM movies").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestPostgresMovieStore_ListByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectQuery("WHERE category_id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(movieRowColumns))

	movies, err := s.ListByCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestPostgresMovieStore_SearchEscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectQuery("name ILIKE \\$1 ESCAPE").
		WithArgs(`%100\%%`).
		WillReturnRows(sqlmock.NewRows(movieRowColumns).AddRow(movieRow(1, "100% Wolf", nil, nil)...))

	movies, err := s.Search(context.Background(), " 100% ")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "100% Wolf", movies[0].Name)
}

func TestPostgresMovieStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)

		mock.ExpectQuery("FROM movies WHERE id = \\$1").WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(movieRowColumns).AddRow(movieRow(3, "Alien", nil, nil)...))

		m, err := s.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), m.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)

		mock.ExpectQuery("FROM movies WHERE id = \\$1").WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(movieRowColumns))

		_, err := s.GetByID(context.Background(), 3)
		assert.ErrorIs(t, err, store.ErrMovieNotFound)
	})
}

func TestPostgresMovieStore_ExistsByName(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectQuery("FROM movies WHERE LOWER\\(name\\)").WithArgs("heat").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.ExistsByName(context.Background(), "heat")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresMovieStore_Create(t *testing.T) {
	t.Run("success without image stores nulls", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)
		m := validMovie()

		mock.ExpectQuery("INSERT INTO movies").
			WithArgs("Heat", "Crime drama", 170, nil, nil, 2, int64(1), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		require.NoError(t, s.Create(context.Background(), m))
		assert.Equal(t, int64(42), m.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)

		mock.ExpectQuery("INSERT INTO movies").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := s.Create(context.Background(), validMovie())
		assert.ErrorIs(t, err, store.ErrMovieExists)
	})

	t.Run("unknown category", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)

		mock.ExpectQuery("INSERT INTO movies").
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

		err := s.Create(context.Background(), validMovie())
		assert.ErrorIs(t, err, store.ErrUnknownCategory)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("validation", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)
		m := validMovie()
		m.Duration = 0

		err := s.Create(context.Background(), m)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})
}

func TestPostgresMovieStore_Update(t *testing.T) {
	t.Run("success with image", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)
		m := validMovie()
		m.ID = 9
		m.ImagePath = "http://localhost:8080/images/x.png"
		m.ImageLocalPath = "x.png"

		mock.ExpectExec("UPDATE movies").
			WithArgs("Heat", "Crime drama", 170, m.ImagePath, "x.png", 2, int64(1), sqlmock.AnyArg(), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), m))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMovieStore(db, nil)
		m := validMovie()
		m.ID = 9

		mock.ExpectExec("UPDATE movies").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), m), store.ErrMovieNotFound)
	})
}

func TestPostgresMovieStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectExec("DELETE FROM movies").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM movies").WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), 1))
	assert.ErrorIs(t, s.Delete(context.Background(), 2), store.ErrMovieNotFound)
}

func TestPostgresMovieStore_DeleteByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMovieStore(db, nil)

	mock.ExpectQuery("DELETE FROM movies WHERE category_id = \\$1 RETURNING id, name").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(movieRowColumns).
			AddRow(movieRow(3, "Alien", "http://localhost:8080/images/a.png", "images/a.png")...).
			AddRow(movieRow(4, "Brazil", nil, nil)...))
	mock.ExpectQuery("DELETE FROM movies WHERE category_id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(movieRowColumns))

	removed, err := s.DeleteByCategory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, removed, 2)
	assert.Equal(t, "images/a.png", removed[0].ImageLocalPath)
	assert.Empty(t, removed[1].ImageLocalPath)

	none, err := s.DeleteByCategory(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, none)
}
