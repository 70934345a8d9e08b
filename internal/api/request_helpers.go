package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/api/shared"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

// getPathID parses a positive integer id from the named URL path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPage reads pageNumber and pageSize from the query string. Missing values
// take the defaults.
func getPage(r *http.Request) (domain.Page, error) {
	number, err := queryInt(r, "pageNumber")
	if err != nil {
		return domain.Page{}, err
	}
	size, err := queryInt(r, "pageSize")
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(number, size)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	return n, nil
}

// parseAndValidateRequest decodes the JSON body into v and validates it,
// writing a 400 response and returning false on failure.
func parseAndValidateRequest(w http.ResponseWriter, r *http.Request, v interface{}, log *slog.Logger) bool {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	if err := shared.DecodeJSON(w, r, v); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		message := "Invalid request format"
		switch sanitized := SanitizeValidationError(err); {
		case errors.Is(err, shared.ErrEmptyBody):
			message = GetSafeErrorMessage(err)
		case sanitized != "Validation error":
			message = sanitized
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		log.Debug("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}

	return true
}

// resourceLocation returns the URL of a resource created under the request path.
func resourceLocation(r *http.Request, id string) string {
	return strings.TrimSuffix(r.URL.Path, "/") + "/" + id
}
