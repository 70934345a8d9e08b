package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/moviecatalog/movie-api/internal/api/shared"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/service"
)

const (
	// imageFormField is the multipart part carrying the movie image.
	imageFormField = "image"

	// multipartOverhead is allowed on top of the image limit for the other
	// form fields and part headers.
	multipartOverhead = 64 << 10

	// multipartMemory is kept in memory before parts spill to temp files.
	multipartMemory = 1 << 20
)

// MovieHandler handles movie-related HTTP requests
type MovieHandler struct {
	movies         service.MovieService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewMovieHandler creates a new MovieHandler. maxUploadBytes bounds the
// image part of multipart requests.
func NewMovieHandler(movies service.MovieService, maxUploadBytes int64, logger *slog.Logger) *MovieHandler {
	if movies == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("movie service cannot be nil for MovieHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MovieHandler{
		movies:         movies,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "movie_handler")),
	}
}

// ListMovies handles GET /movies?pageNumber=&pageSize=
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.movies.ListPage(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list movies")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, moviePageToDTO(result))
}

// GetMovie handles GET /movies/{movieId}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "movieId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	movie, err := h.movies.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get movie")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, movieToDTO(*movie))
}

// ListMoviesByCategory handles GET /movies/category/{categoryId}
func (h *MovieHandler) ListMoviesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathID(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	movies, err := h.movies.ListByCategory(r.Context(), categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list movies")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, moviesToDTO(movies))
}

// SearchMovies handles GET /movies/search?name=
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("name"))
	if term == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid name: required field")
		return
	}

	movies, err := h.movies.Search(r.Context(), term)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search movies")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, moviesToDTO(movies))
}

// CreateMovie handles POST /movies with a JSON body or a multipart form.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	req, image, ok := h.decodeMovieRequest(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer closeQuietly(image.Content)
	}

	movie, err := h.movies.Create(r.Context(), req.toDomain(), image)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create movie")
		return
	}

	w.Header().Set("Location", resourceLocation(r, strconv.FormatInt(movie.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, movieToDTO(*movie))
}

// UpdateMovie handles PATCH /movies/{movieId} with a JSON body or a multipart form.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "movieId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req, image, ok := h.decodeMovieRequest(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer closeQuietly(image.Content)
	}

	if err := h.movies.Update(r.Context(), id, req.toDomain(), image); err != nil {
		HandleAPIError(w, r, err, "Failed to update movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMovie handles DELETE /movies/{movieId}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "movieId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.movies.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeMovieRequest reads a MovieDTO from either a JSON body or a multipart
// form. It writes the error response itself and returns false on failure.
func (h *MovieHandler) decodeMovieRequest(w http.ResponseWriter, r *http.Request) (MovieDTO, *service.ImageUpload, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req MovieDTO
		ok := parseAndValidateRequest(w, r, &req, log)
		return req, nil, ok
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleAPIError(w, r, filestore.ErrImageTooLarge, "")
			return MovieDTO{}, nil, false
		}
		log.Debug("invalid multipart form", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return MovieDTO{}, nil, false
	}

	req, err := movieFromForm(r.MultipartForm)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return MovieDTO{}, nil, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return MovieDTO{}, nil, false
	}

	image, err := imageFromForm(r.MultipartForm, h.maxUploadBytes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return MovieDTO{}, nil, false
	}
	return req, image, true
}

// movieFromForm maps form fields onto a MovieDTO. Numeric fields that fail
// to parse are reported as validation errors.
func movieFromForm(form *multipart.Form) (MovieDTO, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := MovieDTO{
		Name:        value("name"),
		Description: value("description"),
		ImagePath:   value("imagePath"),
	}

	var err error
	if req.ID, err = formInt64(value("id"), "id"); err != nil {
		return req, err
	}
	if req.CategoryID, err = formInt64(value("categoryId"), "categoryId"); err != nil {
		return req, err
	}
	duration, err := formInt64(value("duration"), "duration")
	if err != nil {
		return req, err
	}
	req.Duration = int(duration)

	if raw := value("classification"); raw != "" {
		if req.Classification, err = domain.ParseClassification(raw); err != nil {
			return req, err
		}
	}
	return req, nil
}

func formInt64(raw, field string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be an integer", domain.ErrValidation)
	}
	return n, nil
}

// imageFromForm opens the uploaded image part, if any. The caller closes
// the returned content.
func imageFromForm(form *multipart.Form, maxBytes int64) (*service.ImageUpload, error) {
	files := form.File[imageFormField]
	if len(files) == 0 {
		return nil, nil
	}

	header := files[0]
	if header.Size == 0 {
		return nil, filestore.ErrEmptyImage
	}
	if header.Size > maxBytes {
		return nil, filestore.ErrImageTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &service.ImageUpload{Filename: header.Filename, Content: f}, nil
}

func closeQuietly(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}
