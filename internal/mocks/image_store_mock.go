package mocks

import (
	"context"
	"io"

	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/stretchr/testify/mock"
)

// MockImageStore is a testify mock of filestore.ImageStore.
type MockImageStore struct {
	mock.Mock
}

var _ filestore.ImageStore = (*MockImageStore)(nil)

// Save is a mock implementation of filestore.ImageStore.Save
func (m *MockImageStore) Save(ctx context.Context, originalName string, r io.Reader) (*filestore.StoredImage, error) {
	args := m.Called(ctx, originalName, r)
	if stored, ok := args.Get(0).(*filestore.StoredImage); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of filestore.ImageStore.Delete
func (m *MockImageStore) Delete(ctx context.Context, localPath string) error {
	args := m.Called(ctx, localPath)
	return args.Error(0)
}
