package mocks

import (
	"context"
	"database/sql"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockMovieStore is a testify mock of store.MovieStore.
type MockMovieStore struct {
	mock.Mock
}

var _ store.MovieStore = (*MockMovieStore)(nil)

func moviesArg(args mock.Arguments) ([]domain.Movie, error) {
	if movies, ok := args.Get(0).([]domain.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.MovieStore.List
func (m *MockMovieStore) List(ctx context.Context, page domain.Page) ([]domain.Movie, error) {
	return moviesArg(m.Called(ctx, page))
}

// Count is a mock implementation of store.MovieStore.Count
func (m *MockMovieStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ListByCategory is a mock implementation of store.MovieStore.ListByCategory
func (m *MockMovieStore) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	return moviesArg(m.Called(ctx, categoryID))
}

// Search is a mock implementation of store.MovieStore.Search
func (m *MockMovieStore) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	return moviesArg(m.Called(ctx, term))
}

// GetByID is a mock implementation of store.MovieStore.GetByID
func (m *MockMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*domain.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.MovieStore.ExistsByID
func (m *MockMovieStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ExistsByName is a mock implementation of store.MovieStore.ExistsByName
func (m *MockMovieStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// Create is a mock implementation of store.MovieStore.Create
func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

// Update is a mock implementation of store.MovieStore.Update
func (m *MockMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

// Delete is a mock implementation of store.MovieStore.Delete
func (m *MockMovieStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteByCategory is a mock implementation of store.MovieStore.DeleteByCategory
func (m *MockMovieStore) DeleteByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	return moviesArg(m.Called(ctx, categoryID))
}

// WithTx returns the mock itself unless an expectation for WithTx was set.
func (m *MockMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.MovieStore); ok {
		return ret
	}
	return m
}
