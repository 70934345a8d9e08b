package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Custom behavior functions
	ListFn     func(ctx context.Context) ([]domain.User, error)
	GetFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RegisterFn func(ctx context.Context, input service.RegisterInput) (*domain.User, error)
	LoginFn    func(ctx context.Context, userName, password string) (*service.LoginResult, error)

	// Default return values
	Users        []domain.User
	User         *domain.User
	LoginResult  *service.LoginResult
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// List implements the UserService.List method
func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Users, m.DefaultError
}

// Get implements the UserService.Get method
func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.User, m.DefaultError
}

// Register implements the UserService.Register method
func (m *MockUserService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, input)
	}
	return m.User, m.DefaultError
}

// Login implements the UserService.Login method
func (m *MockUserService) Login(ctx context.Context, userName, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, userName, password)
	}
	return m.LoginResult, m.DefaultError
}
