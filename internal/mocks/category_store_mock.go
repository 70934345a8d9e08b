package mocks

import (
	"context"
	"database/sql"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCategoryStore is a testify mock of store.CategoryStore.
type MockCategoryStore struct {
	mock.Mock
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// List is a mock implementation of store.CategoryStore.List
func (m *MockCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]domain.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.CategoryStore.GetByID
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*domain.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.CategoryStore.ExistsByID
func (m *MockCategoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ExistsByName is a mock implementation of store.CategoryStore.ExistsByName
func (m *MockCategoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// Create is a mock implementation of store.CategoryStore.Create
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// Update is a mock implementation of store.CategoryStore.Update
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// Delete is a mock implementation of store.CategoryStore.Delete
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself unless an expectation for WithTx was set.
func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.CategoryStore); ok {
		return ret
	}
	return m
}
