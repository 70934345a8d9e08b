package service

import (
	"errors"
	"fmt"

	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrIDMismatch indicates the id in the request path differs from the one
	// in the request body. Maps to 400.
	ErrIDMismatch = errors.New("id in path does not match id in body")

	// ErrNoMoviesFound indicates a listing or search matched nothing. Maps to 404.
	ErrNoMoviesFound = errors.New("no movies found")

	// ErrInvalidCredentials indicates a failed login. The message does not
	// reveal whether the username exists. Maps to 400.
	ErrInvalidCredentials = errors.New("username or password incorrect")
)

// ServiceError wraps unexpected errors from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "movie", "category")
	Service string
	// Operation is the operation that failed (e.g., "create", "update")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// knownErrors are returned to callers unwrapped.
var knownErrors = []error{
	domain.ErrValidation,
	store.ErrNotFound,
	store.ErrDuplicate,
	store.ErrInvalidEntity,
	filestore.ErrUnsupportedImageType,
	filestore.ErrImageTooLarge,
	filestore.ErrEmptyImage,
	ErrIDMismatch,
	ErrNoMoviesFound,
	ErrInvalidCredentials,
}

// NewServiceError wraps err with context unless it is one of the sentinel
// errors callers are expected to check for, which are returned unchanged.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
