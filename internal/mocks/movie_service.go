package mocks

import (
	"context"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/service"
)

// MockMovieService implements service.MovieService for testing
type MockMovieService struct {
	// Custom behavior functions
	ListPageFn       func(ctx context.Context, page domain.Page) (*service.MoviePage, error)
	GetFn            func(ctx context.Context, id int64) (*domain.Movie, error)
	ListByCategoryFn func(ctx context.Context, categoryID int64) ([]domain.Movie, error)
	SearchFn         func(ctx context.Context, term string) ([]domain.Movie, error)
	CreateFn         func(ctx context.Context, movie *domain.Movie, image *service.ImageUpload) (*domain.Movie, error)
	UpdateFn         func(ctx context.Context, id int64, movie *domain.Movie, image *service.ImageUpload) error
	DeleteFn         func(ctx context.Context, id int64) error

	// Default return values
	Page         *service.MoviePage
	Movies       []domain.Movie
	Movie        *domain.Movie
	DefaultError error
}

var _ service.MovieService = (*MockMovieService)(nil)

// ListPage implements the MovieService.ListPage method
func (m *MockMovieService) ListPage(ctx context.Context, page domain.Page) (*service.MoviePage, error) {
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, page)
	}
	return m.Page, m.DefaultError
}

// Get implements the MovieService.Get method
func (m *MockMovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Movie, m.DefaultError
}

// ListByCategory implements the MovieService.ListByCategory method
func (m *MockMovieService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Movie, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, categoryID)
	}
	return m.Movies, m.DefaultError
}

// Search implements the MovieService.Search method
func (m *MockMovieService) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	return m.Movies, m.DefaultError
}

// Create implements the MovieService.Create method
func (m *MockMovieService) Create(
	ctx context.Context,
	movie *domain.Movie,
	image *service.ImageUpload,
) (*domain.Movie, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, movie, image)
	}
	return m.Movie, m.DefaultError
}

// Update implements the MovieService.Update method
func (m *MockMovieService) Update(
	ctx context.Context,
	id int64,
	movie *domain.Movie,
	image *service.ImageUpload,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, movie, image)
	}
	return m.DefaultError
}

// Delete implements the MovieService.Delete method
func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}
