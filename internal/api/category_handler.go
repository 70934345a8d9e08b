package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/moviecatalog/movie-api/internal/api/shared"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories service.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if categories == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("category service cannot be nil for CategoryHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// ListCategories handles GET /category
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoriesToDTO(categories))
}

// GetCategory handles GET /category/{categoryId}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoryToDTO(*category))
}

// CreateCategory handles POST /category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CategoryDTO
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	category, err := h.categories.Create(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}

	w.Header().Set("Location", resourceLocation(r, strconv.FormatInt(category.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, categoryToDTO(*category))
}

// UpdateCategory handles PATCH /category/{categoryId}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CategoryDTO
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	if err := h.categories.Update(r.Context(), id, req.toDomain()); err != nil {
		HandleAPIError(w, r, err, "Failed to update category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles DELETE /category/{categoryId}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStringV1 handles GET /api/v1/category/GetString. The endpoint is kept
// for old clients and marked deprecated.
func (h *CategoryHandler) GetStringV1(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Deprecation", "true")
	shared.RespondWithJSON(w, r, http.StatusOK, []string{"valor1", "valor2", "valor3"})
}

// GetStringV2 handles GET /api/v2/category/GetString
func (h *CategoryHandler) GetStringV2(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, []string{"value1", "value2"})
}
