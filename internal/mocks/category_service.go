package mocks

import (
	"context"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/service"
)

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	// Custom behavior functions
	ListFn   func(ctx context.Context) ([]domain.Category, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Category, error)
	CreateFn func(ctx context.Context, name string) (*domain.Category, error)
	UpdateFn func(ctx context.Context, id int64, category *domain.Category) error
	DeleteFn func(ctx context.Context, id int64) error

	// Default return values
	Categories   []domain.Category
	Category     *domain.Category
	DefaultError error
}

var _ service.CategoryService = (*MockCategoryService)(nil)

// List implements the CategoryService.List method
func (m *MockCategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Categories, m.DefaultError
}

// Get implements the CategoryService.Get method
func (m *MockCategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Category, m.DefaultError
}

// Create implements the CategoryService.Create method
func (m *MockCategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name)
	}
	return m.Category, m.DefaultError
}

// Update implements the CategoryService.Update method
func (m *MockCategoryService) Update(ctx context.Context, id int64, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, category)
	}
	return m.DefaultError
}

// Delete implements the CategoryService.Delete method
func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}
