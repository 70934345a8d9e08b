package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

var (
	// ErrUnsupportedImageType is returned when the upload is not an allowed image format.
	ErrUnsupportedImageType = errors.New("unsupported image type")

	// ErrImageTooLarge is returned when the upload exceeds the configured size limit.
	ErrImageTooLarge = errors.New("image exceeds maximum upload size")

	// ErrEmptyImage is returned when the upload has no content.
	ErrEmptyImage = errors.New("image is empty")

	// ErrInvalidPath is returned for local paths that resolve outside the upload directory.
	ErrInvalidPath = errors.New("image path is outside the upload directory")
)

// allowedTypes maps sniffed content types to the extension written to disk.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StoredImage locates a saved image.
type StoredImage struct {
	// LocalPath is relative to the web root, e.g. "images/<uuid>.png".
	LocalPath string
	// URL is the absolute public URL clients use to fetch the image.
	URL string
}

// ImageStore persists uploaded images.
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*StoredImage, error)
	Delete(ctx context.Context, localPath string) error
}

// LocalStore writes images under a directory served statically by the API.
type LocalStore struct {
	dir        string
	publicPath string
	baseURL    string
	maxBytes   int64
	logger     *slog.Logger
}

var _ ImageStore = (*LocalStore)(nil)

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(storage config.StorageConfig, publicBaseURL string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := filepath.Abs(storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &LocalStore{
		dir:        dir,
		publicPath: "/" + strings.Trim(storage.PublicPath, "/"),
		baseURL:    strings.TrimRight(publicBaseURL, "/"),
		maxBytes:   storage.MaxUploadBytes,
		logger:     logger.With(slog.String("component", "image_store")),
	}, nil
}

// Dir returns the absolute upload directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// PublicPath returns the URL path prefix the images are served under.
func (s *LocalStore) PublicPath() string {
	return s.publicPath
}

// Save sniffs the content type, then writes the image under a fresh name.
// The original file name is only logged; the extension comes from the content.
func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (*StoredImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyImage
	}

	contentType := http.DetectContentType(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		log.Debug("rejected image upload",
			slog.String("original_name", originalName),
			slog.String("content_type", contentType))
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}

	var src io.Reader = br
	if s.maxBytes > 0 {
		src = io.LimitReader(br, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("failed to write image: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("failed to close image file: %w", closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		err = ErrImageTooLarge
	}
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			log.Warn("failed to remove partial image", slog.String("error", rmErr.Error()))
		}
		return nil, err
	}

	rel := path.Join(strings.TrimPrefix(s.publicPath, "/"), name)
	log.Info("image stored",
		slog.String("local_path", rel),
		slog.String("content_type", contentType),
		slog.Int64("bytes", n))

	return &StoredImage{
		LocalPath: rel,
		URL:       s.baseURL + "/" + rel,
	}, nil
}

// Delete removes a stored image. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, localPath string) error {
	if localPath == "" {
		return nil
	}
	full, err := s.resolve(localPath)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("image deleted", slog.String("local_path", localPath))
	return nil
}

// resolve maps "images/<name>" (or a bare "<name>") to a file inside the
// upload directory.
func (s *LocalStore) resolve(localPath string) (string, error) {
	p := filepath.ToSlash(localPath)
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, localPath)
		}
	}

	clean := strings.TrimPrefix(path.Clean("/"+p), s.publicPath+"/")
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || strings.Contains(clean, "/") || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, localPath)
	}

	return filepath.Join(s.dir, clean), nil
}
