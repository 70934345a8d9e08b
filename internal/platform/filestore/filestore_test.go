package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the 8-byte PNG signature followed by enough padding to sniff.
var pngHeader = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(config.StorageConfig{
		UploadDir:      filepath.Join(t.TempDir(), "wwwroot", "images"),
		PublicPath:     "/images",
		MaxUploadBytes: maxBytes,
	}, "http://localhost:8080/", nil)
	require.NoError(t, err)
	return s
}

func TestLocalStore_Save(t *testing.T) {
	s := newTestStore(t, 1<<20)

	img, err := s.Save(context.Background(), "poster.jpeg", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(img.LocalPath, "images/"))
	assert.True(t, strings.HasSuffix(img.LocalPath, ".png"), "extension follows the content, not the name")
	assert.Equal(t, "http://localhost:8080/"+img.LocalPath, img.URL)

	data, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(img.LocalPath)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestLocalStore_SaveRejects(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		content  []byte
		wantErr  error
	}{
		{name: "empty", maxBytes: 1024, content: nil, wantErr: ErrEmptyImage},
		{name: "text", maxBytes: 1024, content: []byte("hello, not an image"), wantErr: ErrUnsupportedImageType},
		{name: "too large", maxBytes: 16, content: pngHeader, wantErr: ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, tt.maxBytes)

			_, err := s.Save(context.Background(), "file", bytes.NewReader(tt.content))
			assert.ErrorIs(t, err, tt.wantErr)

			entries, err := os.ReadDir(s.Dir())
			require.NoError(t, err)
			assert.Empty(t, entries, "no partial file is left behind")
		})
	}
}

func TestLocalStore_Delete(t *testing.T) {
	s := newTestStore(t, 1<<20)
	ctx := context.Background()

	img, err := s.Save(ctx, "p.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, img.LocalPath))
	_, err = os.Stat(filepath.Join(s.Dir(), filepath.Base(img.LocalPath)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, img.LocalPath), "deleting twice is tolerated")
	assert.NoError(t, s.Delete(ctx, ""))
}

func TestLocalStore_DeleteRefusesTraversal(t *testing.T) {
	s := newTestStore(t, 1<<20)

	outside := filepath.Join(filepath.Dir(s.Dir()), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	for _, p := range []string{"../keep.txt", "images/../../keep.txt/x", "/etc/passwd", "images/sub/file.png"} {
		err := s.Delete(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
